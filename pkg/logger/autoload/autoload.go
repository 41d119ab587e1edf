// Package autoload initializes the global logger from LOG_* environment
// variables as a blank-import side effect.
package autoload

import (
	configx "github.com/securebank/callcenter-agent/pkg/config"
	logx "github.com/securebank/callcenter-agent/pkg/logger"
)

func init() {
	conf := configx.MustNew[logx.Config]("LOG")
	logx.Init(*conf)
}
