package cli

import (
	"fmt"
	"strconv"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(transactionsCmd)
	transactionsCmd.AddCommand(transactionsListCmd)
	transactionsCmd.AddCommand(transactionsAddCmd)
	transactionsCmd.AddCommand(transactionsRmCmd)

	transactionsListCmd.Flags().String("by", "", "Relation filter: account or entity")
	transactionsListCmd.Flags().Int64("id", 0, "Account or entity id to filter by")

	transactionsAddCmd.Flags().String("date", "", "Transaction date (YYYY-MM-DD)")
	transactionsAddCmd.Flags().Int64("account", 0, "Account id (required)")
	transactionsAddCmd.Flags().Int64("entity", 0, "Entity id (optional)")
	transactionsAddCmd.Flags().StringP("type", "t", string(domain.Debit), "DEBIT or CREDIT")
	transactionsAddCmd.Flags().String("amount", "", "Amount (decimal)")
	transactionsAddCmd.Flags().StringP("memo", "m", "", "Memo")
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Inspect ledger transactions of the active property",
}

var transactionsListCmd = &cobra.Command{
	Use:   "list --by account|entity --id ID",
	Short: "List transactions filtered by one relation",
	RunE: func(cmd *cobra.Command, args []string) error {
		by, _ := cmd.Flags().GetString("by")
		id, _ := cmd.Flags().GetInt64("id")

		filter := domain.TransactionFilter(by)
		if filter != domain.FilterByAccount && filter != domain.FilterByEntity {
			return fmt.Errorf("--by must be %q or %q", domain.FilterByAccount, domain.FilterByEntity)
		}
		if id == 0 {
			return fmt.Errorf("--id required with --by %s", by)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		switch filter {
		case domain.FilterByAccount:
			a.container.Accounts.SetActiveAccount(cmd.Context(), id)
		case domain.FilterByEntity:
			a.container.Entities.SetActiveEntity(cmd.Context(), id)
		}
		a.container.Transactions.SetFilter(cmd.Context(), filter)

		for _, t := range a.container.Transactions.List() {
			counterparty := ""
			if t.Entity != nil {
				counterparty = t.Entity.Name
			}
			account := ""
			if t.Account != nil {
				account = t.Account.Name
			}
			fmt.Printf("%d\t%s\t%-6s\t%s\t%s\t%s\n",
				t.ID, t.Date.Format("2006-01-02"), t.Type, t.Amount.StringFixed(2), account, counterparty)
		}
		return nil
	},
}

var transactionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateStr, _ := cmd.Flags().GetString("date")
		accountID, _ := cmd.Flags().GetInt64("account")
		entityID, _ := cmd.Flags().GetInt64("entity")
		typeStr, _ := cmd.Flags().GetString("type")
		amountStr, _ := cmd.Flags().GetString("amount")
		memo, _ := cmd.Flags().GetString("memo")

		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", dateStr)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid --amount %q", amountStr)
		}
		if accountID == 0 {
			return fmt.Errorf("--account required")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		t := domain.Transaction{
			Date:    date,
			Account: &domain.AccountRef{ID: accountID},
			Type:    domain.LineType(typeStr),
			Amount:  amount,
			Memo:    memo,
		}
		if entityID != 0 {
			t.Entity = &domain.EntityRef{ID: entityID}
		}
		created, err := a.container.Transactions.Add(cmd.Context(), t)
		if err != nil {
			return err
		}
		if created != nil {
			fmt.Printf("Created transaction %d\n", created.ID)
		}
		return nil
	},
}

var transactionsRmCmd = &cobra.Command{
	Use:   "rm TRANSACTION_ID",
	Short: "Soft-delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid transaction id %q", args[0])
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		return a.container.Transactions.Deactivate(cmd.Context(), id)
	},
}
