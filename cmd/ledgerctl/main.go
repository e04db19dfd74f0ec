// Command ledgerctl is a thin operator-facing CLI over the ledger SDK:
// check a balance, send a transfer, and submit a topic message, reading
// operator credentials from the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	ledgersdk "github.com/withObsrvr/ledger-sdk"
)

var (
	networkFlag string
	timeoutFlag time.Duration
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "operator CLI for the ledger SDK",
	}
	root.PersistentFlags().StringVar(&networkFlag, "network", "testnet", "network preset: mainnet, testnet, previewnet, or a config file path")
	root.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "per-command request timeout")

	root.AddCommand(balanceCmd())
	root.AddCommand(transferCmd())
	root.AddCommand(submitMessageCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ledgerctl:", err)
		os.Exit(1)
	}
}

func newClient() (*ledgersdk.Client, error) {
	client, err := ledgersdk.ForName(networkFlag)
	if err != nil {
		var fileErr error
		client, fileErr = ledgersdk.ForConfigFile(networkFlag)
		if fileErr != nil {
			return nil, fmt.Errorf("resolve network %q: %v; as config file: %w", networkFlag, err, fileErr)
		}
	}
	client.SetRequestTimeout(timeoutFlag)

	accountIDStr := os.Getenv("LEDGER_OPERATOR_ID")
	keyStr := os.Getenv("LEDGER_OPERATOR_KEY")
	if accountIDStr != "" && keyStr != "" {
		accountID, err := ledgersdk.ParseAccountID(accountIDStr, client.LedgerID())
		if err != nil {
			return nil, fmt.Errorf("parse LEDGER_OPERATOR_ID: %w", err)
		}
		key, err := ledgersdk.ParsePrivateKey(keyStr)
		if err != nil {
			return nil, fmt.Errorf("parse LEDGER_OPERATOR_KEY: %w", err)
		}
		client.SetOperator(accountID, key)
	}
	return client, nil
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-id>",
		Short: "query an account's hbar and token balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			accountID, err := ledgersdk.ParseAccountID(args[0], client.LedgerID())
			if err != nil {
				return fmt.Errorf("parse account id: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
			defer cancel()

			balance, err := ledgersdk.NewAccountBalanceQuery().
				SetAccountID(accountID).
				Execute(ctx, client)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", accountID, balance.Hbars)
			for tokenID, amount := range balance.TokenBalances {
				fmt.Fprintf(cmd.OutOrStdout(), "  token %s: %d\n", tokenID, amount)
			}
			return nil
		},
	}
}

func transferCmd() *cobra.Command {
	var memo string
	cmd := &cobra.Command{
		Use:   "transfer <from> <to> <amount>",
		Short: "submit a single-asset hbar transfer between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			_, _, ok := client.Operator()
			if !ok {
				return fmt.Errorf("LEDGER_OPERATOR_ID and LEDGER_OPERATOR_KEY must be set to submit transactions")
			}

			from, err := ledgersdk.ParseAccountID(args[0], client.LedgerID())
			if err != nil {
				return fmt.Errorf("parse from account: %w", err)
			}
			to, err := ledgersdk.ParseAccountID(args[1], client.LedgerID())
			if err != nil {
				return fmt.Errorf("parse to account: %w", err)
			}
			amount, err := ledgersdk.ParseAmount(args[2])
			if err != nil {
				return fmt.Errorf("parse amount: %w", err)
			}
			negated, err := amount.Negate()
			if err != nil {
				return fmt.Errorf("negate amount: %w", err)
			}

			tx := ledgersdk.NewTransferTransaction().
				AddHbarTransfer(from, negated).
				AddHbarTransfer(to, amount)
			if memo != "" {
				if err := tx.SetTransactionMemo(memo); err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
			defer cancel()

			txID, err := tx.Execute(ctx, client)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %s\n", txID)

			receipt, err := ledgersdk.NewTransactionReceiptQuery().
				SetTransactionID(txID).
				Execute(ctx, client)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "status: %s\n", receipt.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&memo, "memo", "", "optional transaction memo")
	return cmd
}

func submitMessageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit-message <topic-id> <message>",
		Short: "submit a message to a consensus topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			_, _, ok := client.Operator()
			if !ok {
				return fmt.Errorf("LEDGER_OPERATOR_ID and LEDGER_OPERATOR_KEY must be set to submit transactions")
			}

			topicID, err := ledgersdk.ParseTopicID(args[0], client.LedgerID())
			if err != nil {
				return fmt.Errorf("parse topic id: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
			defer cancel()

			tx := ledgersdk.NewTopicMessageSubmitTransaction(topicID).SetMessage([]byte(args[1]))
			txID, err := tx.Execute(ctx, client)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %s\n", txID)
			return nil
		},
	}
}
