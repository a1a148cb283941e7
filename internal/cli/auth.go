package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rentbooks/rentbooks/internal/dto"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringP("email", "e", "", "Account email")
	loginCmd.Flags().StringP("password", "p", "", "Account password (prompted when omitted)")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the access token",
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if email == "" {
		return fmt.Errorf("email required: rentbooks login -e you@example.com")
	}
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	if err := a.container.Session.Login(cmd.Context(), dto.LoginRequest{Email: email, Password: password}); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Println("Logged in.")
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		a.container.Session.Logout(cmd.Context())
		if err := a.rememberActiveProperty(0); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if !a.container.Session.Authenticated() {
			return fmt.Errorf("not logged in")
		}
		u, err := a.container.Session.Profile(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		fmt.Printf("%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
		return nil
	},
}
