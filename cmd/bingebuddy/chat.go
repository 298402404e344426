package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask for recommendations in plain words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}

			reply := a.assistant.Reply(cmd.Context(), strings.Join(args, " "))
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, reply.Message)
			for i, line := range reply.Results {
				fmt.Fprintf(out, "%2d. %s\n", i+1, line)
			}
			return nil
		},
	}
}
