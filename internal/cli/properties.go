package cli

import (
	"fmt"
	"strconv"

	"github.com/rentbooks/rentbooks/internal/core/domain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(propertiesCmd)
	propertiesCmd.AddCommand(propertiesListCmd)
	propertiesCmd.AddCommand(propertiesUseCmd)
	propertiesCmd.AddCommand(propertiesAddCmd)
	propertiesCmd.AddCommand(propertiesRmCmd)

	propertiesAddCmd.Flags().String("address", "", "Street address")
	propertiesAddCmd.Flags().String("city", "", "City")
	propertiesAddCmd.Flags().String("state", "", "State")
	propertiesAddCmd.Flags().String("zip", "", "ZIP code")
}

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Manage rental properties and the active selection",
}

var propertiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List properties",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		active := a.container.Properties.ActivePropertyID()
		for _, p := range a.container.Properties.List() {
			marker := " "
			if p.ID == active {
				marker = "*"
			}
			fmt.Printf("%s %d\t%s\t%s %s %s %s\n", marker, p.ID, p.Name, p.Address, p.City, p.State, p.Zip)
		}
		return nil
	},
}

var propertiesUseCmd = &cobra.Command{
	Use:   "use PROPERTY_ID",
	Short: "Select the active property",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid property id %q", args[0])
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		a.container.Properties.SetActiveProperty(cmd.Context(), id)
		if err := a.rememberActiveProperty(id); err != nil {
			return err
		}
		fmt.Printf("Active property: %d\n", id)
		return nil
	},
}

var propertiesAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a property",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		address, _ := cmd.Flags().GetString("address")
		city, _ := cmd.Flags().GetString("city")
		state, _ := cmd.Flags().GetString("state")
		zip, _ := cmd.Flags().GetString("zip")

		p, err := a.container.Properties.Add(cmd.Context(), domain.Property{
			Name:    args[0],
			Address: address,
			City:    city,
			State:   state,
			Zip:     zip,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created property %d\n", p.ID)
		return nil
	},
}

var propertiesRmCmd = &cobra.Command{
	Use:   "rm PROPERTY_ID",
	Short: "Soft-delete a property",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid property id %q", args[0])
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.container.Properties.Deactivate(cmd.Context(), id); err != nil {
			return err
		}
		if a.container.Properties.ActivePropertyID() == 0 {
			if err := a.rememberActiveProperty(0); err != nil {
				return err
			}
		}
		return nil
	},
}
