package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"easy2go/internal/reconcile"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one reconcile document",
	Long: `Fetch one reconcile document and render it read-only, including its
lock state and line items. Pass --pics to list its image attachments as
well.`,
	Example: `  easy2go show R-1
  easy2go show R-1 --pics`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("pics", false, "Also list image attachments")
}

func runShow(cmd *cobra.Command, args []string) error {
	withPics, _ := cmd.Flags().GetBool("pics")

	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx, cancel := e.cmdContext()
	defer cancel()

	doc, err := e.svc.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetching detail failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), reconcile.RenderDocument(doc, e.sess.Role.IsAdmin()))

	if withPics {
		pics, err := e.svc.Pics(ctx, doc.ID)
		if err != nil {
			return fmt.Errorf("fetching pics failed: %w", err)
		}
		printPics(cmd, e.cfg.StaticBase, pics)
	}
	return nil
}
