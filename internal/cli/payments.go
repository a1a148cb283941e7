package cli

import (
	"fmt"
	"strconv"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(paymentsCmd)
	paymentsCmd.AddCommand(paymentsListCmd)
	paymentsCmd.AddCommand(paymentsAddCmd)
	paymentsCmd.AddCommand(paymentsRmCmd)

	paymentsListCmd.Flags().Int("year", 0, "Filter by period year")
	paymentsListCmd.Flags().Int("month", 0, "Filter by period month")

	paymentsAddCmd.Flags().Int64("entity", 0, "Tenant entity id (required)")
	paymentsAddCmd.Flags().Int("year", 0, "Period year (required)")
	paymentsAddCmd.Flags().Int("month", 0, "Period month (required)")
	paymentsAddCmd.Flags().String("amount", "", "Amount (decimal)")
	paymentsAddCmd.Flags().String("paid-on", "", "Payment date (YYYY-MM-DD)")
	paymentsAddCmd.Flags().StringP("memo", "m", "", "Memo")
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Manage rent payments of the active property",
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rent payments, optionally for one period",
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		month, _ := cmd.Flags().GetInt("month")

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		if year != 0 && month != 0 {
			a.container.RentPayments.SetPeriod(cmd.Context(), year, month)
		}
		for _, p := range a.container.RentPayments.List() {
			tenant := ""
			if p.Entity != nil {
				tenant = p.Entity.Name
			}
			fmt.Printf("%d\t%04d-%02d\t%s\t%s\tpaid %s\n",
				p.ID, p.Year, p.Month, p.Amount.StringFixed(2), tenant, p.PaidOn.Format("2006-01-02"))
		}
		return nil
	},
}

var paymentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a rent payment",
	RunE: func(cmd *cobra.Command, args []string) error {
		entityID, _ := cmd.Flags().GetInt64("entity")
		year, _ := cmd.Flags().GetInt("year")
		month, _ := cmd.Flags().GetInt("month")
		amountStr, _ := cmd.Flags().GetString("amount")
		paidOnStr, _ := cmd.Flags().GetString("paid-on")
		memo, _ := cmd.Flags().GetString("memo")

		if entityID == 0 {
			return fmt.Errorf("--entity required")
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return fmt.Errorf("invalid --amount %q", amountStr)
		}
		paidOn, err := domain.ParseDate(paidOnStr)
		if err != nil {
			return fmt.Errorf("invalid --paid-on %q: use YYYY-MM-DD", paidOnStr)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		p, err := a.container.RentPayments.Add(cmd.Context(), domain.RentPayment{
			Entity: &domain.EntityRef{ID: entityID},
			Year:   year,
			Month:  month,
			Amount: amount,
			PaidOn: paidOn,
			Memo:   memo,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created rent payment %d\n", p.ID)
		return nil
	},
}

var paymentsRmCmd = &cobra.Command{
	Use:   "rm PAYMENT_ID",
	Short: "Soft-delete a rent payment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid payment id %q", args[0])
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		return a.container.RentPayments.Deactivate(cmd.Context(), id)
	},
}
