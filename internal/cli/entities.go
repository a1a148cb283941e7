package cli

import (
	"fmt"
	"strconv"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(entitiesCmd)
	entitiesCmd.AddCommand(entitiesListCmd)
	entitiesCmd.AddCommand(entitiesAddCmd)
	entitiesCmd.AddCommand(entitiesRmCmd)

	entitiesAddCmd.Flags().StringP("kind", "k", string(domain.Tenant), "Entity kind (TENANT, VENDOR, OTHER)")
	entitiesAddCmd.Flags().String("email", "", "Contact email")
	entitiesAddCmd.Flags().String("phone", "", "Contact phone")
}

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Manage tenants and vendors of the active property",
}

var entitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entities",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		for _, e := range a.container.Entities.List() {
			fmt.Printf("%d\t%-6s\t%s\t%s\n", e.ID, e.Kind, e.Name, e.Email)
		}
		return nil
	},
}

var entitiesAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add an entity",
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

		kind, _ := cmd.Flags().GetString("kind")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")

		e, err := a.container.Entities.Add(cmd.Context(), domain.Entity{
			Name:  args[0],
			Kind:  domain.EntityKind(kind),
			Email: email,
			Phone: phone,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created entity %d\n", e.ID)
		return nil
	},
}

var entitiesRmCmd = &cobra.Command{
	Use:   "rm ENTITY_ID",
	Short: "Soft-delete an entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entity id %q", args[0])
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.requireProperty(); err != nil {
			return err
		}

		return a.container.Entities.Deactivate(cmd.Context(), id)
	},
}
