package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/securebank/callcenter-agent/agent/orchestrator"
)

func newDemoCmd(agent *orchestrator.Agent) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Replay a scripted demo call",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			sessionID := agent.CreateSession()

			scenarios := []struct {
				description string
				message     string
			}{
				{"Starting conversation...", "Hello, I need help with my account"},
				{"Identifying customer...", "My phone number is +1-555-0101"},
				{"Checking balance...", "What's my account balance?"},
				{"Viewing transactions...", "Show me my recent transactions"},
				{"Checking cards...", "What cards do I have?"},
				{"Checking loans...", "Tell me about my loans"},
				{"Reporting lost card...", "I lost my card ending in 4521"},
			}

			for _, scenario := range scenarios {
				fmt.Fprintf(out, "\n%s\n", scenario.description)
				fmt.Fprintf(out, "User: %s\n", scenario.message)

				result := agent.ProcessMessage(cmd.Context(), sessionID, scenario.message)
				fmt.Fprintf(out, "Agent: %s\n", result.Response)
				if len(result.ToolsCalled) > 0 {
					fmt.Fprintf(out, "APIs called: %s\n", strings.Join(result.ToolsCalled, ", "))
				}
			}

			summary, err := agent.EndSession(sessionID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nDemo complete. Total API calls: %d\n", summary.ActionCount)
			return nil
		},
	}
}
