package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"easy2go/internal/reconcile"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reconcile documents",
	Long: `List the reconcile documents of the current customer.

The customer id comes from the stored session; admins can pass --customer
to inspect another customer's documents.`,
	Example: `  easy2go list
  easy2go list --customer cust-1
  easy2go list --silent`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("customer", "", "Customer id (defaults to the session's)")
	listCmd.Flags().Bool("silent", false, "Suppress the loading notice (background refresh)")
}

func runList(cmd *cobra.Command, args []string) error {
	customerID, _ := cmd.Flags().GetString("customer")
	silent, _ := cmd.Flags().GetBool("silent")

	e, err := newEnv()
	if err != nil {
		return err
	}

	if customerID == "" {
		customerID = e.sess.CustomerID
	}
	if !e.sess.LoggedIn() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in. Run: easy2go login -u <username> -p <password>")
	}

	if !silent {
		fmt.Fprintln(cmd.OutOrStdout(), "Loading...")
	}

	ctx, cancel := e.cmdContext()
	defer cancel()

	items, err := e.svc.List(ctx, customerID)
	if err != nil {
		return fmt.Errorf("fetching list failed: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reconcile documents yet. Create one with: easy2go create")
		return nil
	}

	// The list endpoint carries no currency; keep the constant until the
	// backend returns it per row.
	const currency = "CNY"

	for _, it := range items {
		fmt.Fprintln(cmd.OutOrStdout(), reconcile.RenderSummary(it, currency))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d document(s). View one with: easy2go show <id>\n", len(items))
	return nil
}
