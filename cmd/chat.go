package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/securebank/callcenter-agent/agent/orchestrator"
)

func newChatCmd(agent *orchestrator.Agent) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the agent interactively",
		Long:  "Opens a conversation session and reads caller messages from stdin. Type 'quit' or 'exit' to end the call and print the session summary.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessionID := agent.CreateSession()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Connected to SecureBank. Type 'quit' to hang up.")
			fmt.Fprintln(out)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "You: ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if line == "quit" || line == "exit" {
					break
				}

				result := agent.ProcessMessage(cmd.Context(), sessionID, line)
				fmt.Fprintf(out, "\nAgent: %s\n\n", result.Response)
				if result.Err != "" {
					fmt.Fprintf(out, "(error: %s)\n", result.Err)
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			summary, err := agent.EndSession(sessionID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nCall ended. %d messages, %d actions over %.0f seconds.\n",
				summary.MessageCount, summary.ActionCount, summary.DurationSeconds)
			return nil
		},
	}
}
