package cmd

import (
	"github.com/spf13/cobra"
)

var positionCmd = &cobra.Command{
	Use:   "position <account-id>",
	Short: "show user positions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := provideClient()

		policy, err := policyFrom(cmd)
		if err != nil {
			return err
		}

		if poolID, _ := cmd.Flags().GetString("pool"); poolID != "" {
			snapshot, err := c.GetUserPosition(ctx, args[0], poolID, policy)
			if err != nil {
				return err
			}
			printJSON(snapshot)
			return nil
		}

		snapshots, err := c.GetUserPositions(ctx, args[0], policy)
		if err != nil {
			return err
		}
		printJSON(snapshots)
		return nil
	},
}

func init() {
	positionCmd.Flags().String("pool", "", "restrict to one pool")

	rootCmd.AddCommand(positionCmd)
}
