package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDestroyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <bot-name>",
		Short: "Delete a bot and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			botID, err := rt.svc.LookupBotID(ctx, args[0])
			if err != nil {
				return err
			}
			if botID == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "bot %q not found, nothing to destroy\n", args[0])
				return nil
			}

			if err := rt.svc.DeleteBot(ctx, botID); err != nil {
				return err
			}
			if err := rt.svc.WaitForBotDeletion(ctx, botID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bot %q (%s) destroyed\n", args[0], botID)
			return nil
		},
	}
}
