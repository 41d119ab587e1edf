package main

import (
	"os"

	"github.com/securebank/callcenter-agent/cmd"
	_ "github.com/securebank/callcenter-agent/pkg/logger/autoload"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
