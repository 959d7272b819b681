package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"easy2go/internal/logger"
	"easy2go/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long: `Log in against the backend and persist the returned token, role and
customer id for the other commands.

Accounts are issued by an administrator; there is no self-registration.
The username may come pre-filled from a shared account link.`,
	Example: `  easy2go login -u test01 -p secret
  easy2go login --username test01 --password secret`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("username", "u", "", "Username / customer code")
	loginCmd.Flags().StringP("password", "p", "", "Password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("login")

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx, cancel := e.cmdContext()
	defer cancel()

	result, err := e.svc.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	role := session.ParseRole(result.Role)
	if err := session.Save(e.store, result.Token, role, result.CustomerID); err != nil {
		return err
	}

	log.Info().
		Str("role", role.String()).
		Str("customer_id", result.CustomerID).
		Msg("Session stored")

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (role: %s)\n", username, role)
	if result.CustomerID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Customer: %s\n", result.CustomerID)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Next: easy2go list")
	return nil
}
