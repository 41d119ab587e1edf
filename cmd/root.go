// Package cmd wires the call-center agent into a terminal front end.
package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bankagent",
		Short:         "SecureBank call-center agent demo",
		Long:          "bankagent runs the SecureBank call-center AI agent against a simulated banking backend: chat interactively, replay a scripted demo call, or inspect the agent's tool catalog.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	agent, err := wireAgent()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newChatCmd(agent),
		newDemoCmd(agent),
		newToolsCmd(agent),
	)

	return rootCmd
}
