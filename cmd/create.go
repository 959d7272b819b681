package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"easy2go/internal/logger"
	"easy2go/internal/reconcile"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new reconcile document",
	Long: `Assemble a new reconcile document and submit it.

The draft starts from the company defaults (seller block, logistics
route, generated invoice number, today's date); every section field can
be overridden with --set, and line items come from --item specs and/or an
--items-file JSON array. Validation runs before anything is sent: the
consignee company and invoice number are required and at least one item
must be present.`,
	Example: `  easy2go create \
    --set to_company="Bite of China Ltd" \
    --set to_address="59 Georges Street Lower, Dublin A96 EW71" \
    --item "product_name=Electric Scooter,units_pcs=10,unit_price=299.99,hs_code=87116090"

  easy2go create --set to_company=ACME --items-file items.json

  # Keep the draft locally instead of submitting
  easy2go create --set to_company=ACME --item "product_name=X,units_pcs=1,unit_price=2" --draft`,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringArray("set", nil, "Set a document field (field=value, repeatable)")
	createCmd.Flags().StringArray("item", nil, "Add a line item (comma-separated field=value list, repeatable)")
	createCmd.Flags().String("items-file", "", "JSON file holding an array of line items")
	createCmd.Flags().Bool("draft", false, "Save the document locally instead of submitting")
	createCmd.Flags().Bool("preview", false, "Render the assembled document without submitting")
}

func runCreate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("create")

	sets, _ := cmd.Flags().GetStringArray("set")
	itemSpecs, _ := cmd.Flags().GetStringArray("item")
	itemsFile, _ := cmd.Flags().GetString("items-file")
	draft, _ := cmd.Flags().GetBool("draft")
	preview, _ := cmd.Flags().GetBool("preview")

	form := reconcile.NewDraft(time.Now())

	for _, s := range sets {
		key, value, err := reconcile.ParseAssignment(s)
		if err != nil {
			return err
		}
		if err := form.SetField(key, value); err != nil {
			return err
		}
	}

	items, err := collectItems(itemsFile, itemSpecs)
	if err != nil {
		return err
	}
	form.Items = items

	if preview {
		fmt.Fprintln(cmd.OutOrStdout(), reconcile.RenderForm(form))
		return nil
	}

	e, err := newEnv()
	if err != nil {
		return err
	}

	if draft {
		id, err := reconcile.SaveLocalDraft(e.store, form, time.Now())
		if err != nil {
			return err
		}
		log.Info().Str("id", id).Msg("Draft saved locally")
		fmt.Fprintf(cmd.OutOrStdout(), "Draft saved locally as %s\n", id)
		return nil
	}

	ctx, cancel := e.cmdContext()
	defer cancel()

	doc, err := e.svc.Create(ctx, form)
	if err != nil {
		return fmt.Errorf("create failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n\n", doc.ID)
	fmt.Fprintln(cmd.OutOrStdout(), reconcile.RenderDocument(doc, e.sess.Role.IsAdmin()))
	return nil
}

// collectItems merges the items file (first) with the --item specs, each
// item validated as the sub-form would on save.
func collectItems(itemsFile string, specs []string) ([]reconcile.ItemForm, error) {
	var items []reconcile.ItemForm

	if itemsFile != "" {
		data, err := os.ReadFile(itemsFile)
		if err != nil {
			return nil, fmt.Errorf("read items file: %w", err)
		}
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("parse items file: %w", err)
		}
	}

	for _, spec := range specs {
		it, err := reconcile.ParseItemSpec(spec)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	for i, it := range items {
		if err := reconcile.ValidateItem(it); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return items, nil
}
