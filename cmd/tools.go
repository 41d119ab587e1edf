package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/securebank/callcenter-agent/agent/orchestrator"
)

func newToolsCmd(agent *orchestrator.Agent) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the agent's tool catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, listing := range agent.ListTools() {
				desc := listing.Description
				if len(desc) > 80 {
					desc = desc[:80] + "..."
				}
				fmt.Fprintf(w, "%s\t%s\n", listing.Name, desc)
			}
			return w.Flush()
		},
	}
}
