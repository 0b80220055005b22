package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var poolCmd = &cobra.Command{
	Use:     "pool <pool-id>",
	Aliases: []string{"p"},
	Short:   "show pool stats",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		policy, err := policyFrom(cmd)
		if err != nil {
			return err
		}

		snapshot, err := provideClient().GetPoolStats(ctx, args[0], policy)
		if err != nil {
			return err
		}

		printJSON(snapshot)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <account-id>",
	Short: "show recent account activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		policy, err := policyFrom(cmd)
		if err != nil {
			return err
		}

		transactions, err := provideClient().GetTransactionHistory(ctx, args[0], limit, policy)
		if err != nil {
			return err
		}

		printJSON(transactions)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "max records")

	rootCmd.AddCommand(poolCmd)
	rootCmd.AddCommand(historyCmd)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(data))
}
