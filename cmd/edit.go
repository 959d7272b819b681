package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"easy2go/internal/logger"
	"easy2go/internal/reconcile"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a reconcile document",
	Long: `Edit an existing reconcile document.

The document is fetched, turned into an editing snapshot, mutated by the
given flags, validated, and saved as a full replacement. The server's
returned representation is what gets rendered afterwards; the local
snapshot is discarded in its favor.

A locked document (editable=false) can only be edited by an admin.`,
	Example: `  easy2go edit R-1 --set invoice_date=2026-01-12 --set trade_terms=CIF

  easy2go edit R-1 --add-item "product_name=Helmet,units_pcs=5,unit_price=19.9"

  easy2go edit R-1 --edit-item "0:unit_price=249.99" --del-item 2

  # Replace the whole item list
  easy2go edit R-1 --items-file items.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringArray("set", nil, "Set a document field (field=value, repeatable)")
	editCmd.Flags().StringArray("add-item", nil, "Append a line item (field=value list, repeatable)")
	editCmd.Flags().StringArray("edit-item", nil, "Update a line item in place (idx:field=value list, repeatable)")
	editCmd.Flags().IntSlice("del-item", nil, "Delete the line item at this index (0-based, repeatable)")
	editCmd.Flags().String("items-file", "", "JSON file replacing the whole item list")
	editCmd.Flags().Bool("preview", false, "Render the edited document without saving")
}

func runEdit(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("edit")
	id := args[0]

	sets, _ := cmd.Flags().GetStringArray("set")
	addItems, _ := cmd.Flags().GetStringArray("add-item")
	editItems, _ := cmd.Flags().GetStringArray("edit-item")
	delItems, _ := cmd.Flags().GetIntSlice("del-item")
	itemsFile, _ := cmd.Flags().GetString("items-file")
	preview, _ := cmd.Flags().GetBool("preview")

	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx, cancel := e.cmdContext()
	defer cancel()

	doc, err := e.svc.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching detail failed: %w", err)
	}

	if !doc.Editable && !e.sess.Role.IsAdmin() {
		return fmt.Errorf("document %s is locked and cannot be edited", id)
	}

	form := reconcile.FormFrom(*doc)

	if itemsFile != "" {
		items, err := collectItems(itemsFile, nil)
		if err != nil {
			return err
		}
		form.Items = items
	}

	for _, s := range sets {
		key, value, err := reconcile.ParseAssignment(s)
		if err != nil {
			return err
		}
		if err := form.SetField(key, value); err != nil {
			return err
		}
	}

	// Deletes run highest index first so earlier removals don't shift the
	// remaining targets.
	sort.Sort(sort.Reverse(sort.IntSlice(delItems)))
	for _, idx := range delItems {
		if !form.DeleteItem(idx) {
			return fmt.Errorf("no item at index %d", idx)
		}
	}

	for _, spec := range editItems {
		idx, it, err := parseIndexedItem(spec, form)
		if err != nil {
			return err
		}
		if err := reconcile.ValidateItem(it); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
		form.SetItem(idx, it)
	}

	for _, spec := range addItems {
		it, err := reconcile.ParseItemSpec(spec)
		if err != nil {
			return err
		}
		if err := reconcile.ValidateItem(it); err != nil {
			return err
		}
		form.AddItem(it)
	}

	if preview {
		fmt.Fprintln(cmd.OutOrStdout(), reconcile.RenderForm(form))
		return nil
	}

	saved, err := e.svc.Save(ctx, id, form)
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	log.Info().Str("id", saved.ID).Msg("Document saved")
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n\n", saved.ID)
	fmt.Fprintln(cmd.OutOrStdout(), reconcile.RenderDocument(saved, e.sess.Role.IsAdmin()))
	return nil
}

// parseIndexedItem handles an "idx:field=value,..." spec. The updated
// fields overlay the item currently at idx.
func parseIndexedItem(spec string, form reconcile.Form) (int, reconcile.ItemForm, error) {
	var idxStr, rest string
	for i, r := range spec {
		if r == ':' {
			idxStr, rest = spec[:i], spec[i+1:]
			break
		}
	}
	if rest == "" {
		return 0, reconcile.ItemForm{}, fmt.Errorf("bad item spec %q, want idx:field=value", spec)
	}

	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(form.Items) {
		return 0, reconcile.ItemForm{}, fmt.Errorf("no item at index %q", idxStr)
	}

	it := form.Items[idx]
	for _, pair := range splitSpec(rest) {
		key, value, err := reconcile.ParseAssignment(pair)
		if err != nil {
			return 0, reconcile.ItemForm{}, err
		}
		if err := it.SetField(key, value); err != nil {
			return 0, reconcile.ItemForm{}, err
		}
	}
	return idx, it, nil
}

// splitSpec breaks a comma-separated field=value list into assignments. A
// segment without "=" belongs to the preceding value, keeping commas in
// marks and addresses intact.
func splitSpec(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if len(out) > 0 && !strings.Contains(part, "=") {
			out[len(out)-1] += "," + part
			continue
		}
		out = append(out, part)
	}
	return out
}
