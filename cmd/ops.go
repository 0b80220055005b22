package cmd

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/christopherkarani/blend-client/client"
	"github.com/christopherkarani/blend-client/core"
	"github.com/christopherkarani/blend-client/pkg/number"
)

type opFunc func(c *client.Client, ctx context.Context, accountID, poolID, assetID string, amount decimal.Decimal) (*core.OperationOutcome, error)

func opCommand(use, short string, run opFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <amount>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			amount := number.Decimal(args[0])
			accountID, _ := cmd.Flags().GetString("account")
			poolID, _ := cmd.Flags().GetString("pool")
			assetID, _ := cmd.Flags().GetString("asset")

			outcome, err := run(provideClient(), ctx, accountID, poolID, assetID, amount)
			if err != nil {
				printJSON(core.FailureOutcome(err))
				return
			}
			printJSON(outcome)
		},
	}

	cmd.Flags().String("account", "", "initiating account id")
	cmd.Flags().String("pool", "", "pool id")
	cmd.Flags().String("asset", "", "asset id")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("pool")
	_ = cmd.MarkFlagRequired("asset")

	return cmd
}

func init() {
	rootCmd.AddCommand(
		opCommand("deposit", "deposit into a pool", (*client.Client).Deposit),
		opCommand("withdraw", "withdraw a deposit", (*client.Client).Withdraw),
		opCommand("deposit-collateral", "deposit collateral", (*client.Client).DepositCollateral),
		opCommand("withdraw-collateral", "withdraw collateral", (*client.Client).WithdrawCollateral),
		opCommand("borrow", "borrow from a pool", (*client.Client).Borrow),
		opCommand("repay", "repay a borrow", (*client.Client).Repay),
	)
}
