package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"easy2go/internal/logger"
)

var lockCmd = &cobra.Command{
	Use:   "lock <id>",
	Short: "Lock a document against customer edits (admin)",
	Long: `Set editable=false on a document so customers can no longer change it.
Admin only; the lock is sent as a partial update carrying just that
field.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEditable(cmd, args[0], false)
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Unlock a document for customer edits (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEditable(cmd, args[0], true)
	},
}

func init() {
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(unlockCmd)
}

func runSetEditable(cmd *cobra.Command, id string, editable bool) error {
	log := logger.WithComponent("lock")

	e, err := newEnv()
	if err != nil {
		return err
	}

	if !e.sess.Role.IsAdmin() {
		return fmt.Errorf("only admins can change a document's lock state")
	}

	ctx, cancel := e.cmdContext()
	defer cancel()

	doc, err := e.svc.SetEditable(ctx, id, editable)
	if err != nil {
		return fmt.Errorf("lock change failed: %w", err)
	}

	state := "locked"
	if doc.Editable {
		state = "unlocked"
	}
	log.Info().Str("id", doc.ID).Bool("editable", doc.Editable).Msg("Lock state changed")
	fmt.Fprintf(cmd.OutOrStdout(), "Document %s is now %s\n", doc.ID, state)
	return nil
}
