package cli

import (
	"fmt"
	"strconv"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/rentbooks/rentbooks/internal/utils/collection"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsAddCmd)
	accountsCmd.AddCommand(accountsRenameCmd)
	accountsCmd.AddCommand(accountsRmCmd)

	accountsAddCmd.Flags().StringP("type", "t", string(domain.Asset), "Account type (ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)")
	accountsAddCmd.Flags().StringP("description", "d", "", "Description")
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage bookkeeping accounts of the active property",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		for _, acct := range a.container.Accounts.List() {
			fmt.Printf("%d\t%-9s\t%s\n", acct.ID, acct.Type, acct.Name)
		}
		return nil
	},
}

var accountsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		accountType, _ := cmd.Flags().GetString("type")
		description, _ := cmd.Flags().GetString("description")

		acct, err := a.container.Accounts.Add(cmd.Context(), domain.Account{
			Name:        args[0],
			Type:        domain.AccountType(accountType),
			Description: description,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created account %d\n", acct.ID)
		return nil
	},
}

var accountsRenameCmd = &cobra.Command{
	Use:   "rename ACCOUNT_ID NEW_NAME",
	Short: "Rename an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account id %q", args[0])
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		acct, ok := collection.Find(a.container.Accounts.List(), id)
		if !ok {
			return fmt.Errorf("account %d not found under the active property", id)
		}
		acct.Name = args[1]
		if _, err := a.container.Accounts.Update(cmd.Context(), acct); err != nil {
			return err
		}
		return nil
	},
}

var accountsRmCmd = &cobra.Command{
	Use:   "rm ACCOUNT_ID",
	Short: "Soft-delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account id %q", args[0])
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		return a.container.Accounts.Deactivate(cmd.Context(), id)
	},
}
