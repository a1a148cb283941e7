package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(journalsCmd)
	journalsCmd.AddCommand(journalsListCmd)
	journalsCmd.AddCommand(journalsAddCmd)
	journalsCmd.AddCommand(journalsRmCmd)

	journalsAddCmd.Flags().String("date", "", "Journal date (YYYY-MM-DD)")
	journalsAddCmd.Flags().StringP("memo", "m", "", "Memo")
	journalsAddCmd.Flags().StringArrayP("line", "l", nil,
		"Journal line as ACCOUNT_ID:DEBIT|CREDIT:AMOUNT (repeat, at least twice)")
}

var journalsCmd = &cobra.Command{
	Use:   "journals",
	Short: "Manage journal entries of the active property",
}

var journalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		for _, j := range a.container.Journals.List() {
			fmt.Printf("%d\t%s\t%s\n", j.ID, j.Date.Format("2006-01-02"), j.Memo)
			for _, line := range j.Lines {
				name := "?"
				if line.Account != nil {
					name = line.Account.Name
				}
				fmt.Printf("\t%-6s\t%s\t%s\n", line.Type, line.Amount.StringFixed(2), name)
			}
		}
		return nil
	},
}

// parseLine parses one --line value of the form ACCOUNT_ID:TYPE:AMOUNT.
func parseLine(raw string) (domain.JournalLine, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return domain.JournalLine{}, fmt.Errorf("line %q must be ACCOUNT_ID:DEBIT|CREDIT:AMOUNT", raw)
	}
	accountID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return domain.JournalLine{}, fmt.Errorf("line %q: invalid account id", raw)
	}
	lineType := domain.LineType(strings.ToUpper(parts[1]))
	if lineType != domain.Debit && lineType != domain.Credit {
		return domain.JournalLine{}, fmt.Errorf("line %q: type must be DEBIT or CREDIT", raw)
	}
	amount, err := decimal.NewFromString(parts[2])
	if err != nil {
		return domain.JournalLine{}, fmt.Errorf("line %q: invalid amount", raw)
	}
	return domain.JournalLine{
		Account: &domain.AccountRef{ID: accountID},
		Type:    lineType,
		Amount:  amount,
	}, nil
}

var journalsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a balanced journal entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateStr, _ := cmd.Flags().GetString("date")
		memo, _ := cmd.Flags().GetString("memo")
		rawLines, _ := cmd.Flags().GetStringArray("line")

		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", dateStr)
		}
		lines := make([]domain.JournalLine, 0, len(rawLines))
		for _, raw := range rawLines {
			line, err := parseLine(raw)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		j, err := a.container.Journals.Add(cmd.Context(), domain.Journal{
			Date:  date,
			Memo:  memo,
			Lines: lines,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created journal %d\n", j.ID)
		return nil
	},
}

var journalsRmCmd = &cobra.Command{
	Use:   "rm JOURNAL_ID",
	Short: "Soft-delete a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid journal id %q", args[0])
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		return a.container.Journals.Deactivate(cmd.Context(), id)
	},
}
