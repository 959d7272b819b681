package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"easy2go/internal/logger"
	"easy2go/internal/reconcile"
)

var picsCmd = &cobra.Command{
	Use:   "pics",
	Short: "Manage a document's image attachments",
}

var picsListCmd = &cobra.Command{
	Use:   "list <id>",
	Short: "List a document's attachments",
	Args:  cobra.ExactArgs(1),
	RunE:  runPicsList,
}

var picsUploadCmd = &cobra.Command{
	Use:   "upload <id> <file>",
	Short: "Upload an image attachment",
	Long: `Upload one local image to a document. The document must be editable
(or the session must be an admin's).`,
	Args: cobra.ExactArgs(2),
	RunE: runPicsUpload,
}

var picsDeleteCmd = &cobra.Command{
	Use:   "delete <id> <rel-path>",
	Short: "Delete an attachment",
	Long: `Delete one attachment by its relative path. Asks for confirmation
before anything is sent; --yes skips the prompt.`,
	Args: cobra.ExactArgs(2),
	RunE: runPicsDelete,
}

var picsPreviewCmd = &cobra.Command{
	Use:   "preview <id> [rel-path]",
	Short: "Print attachment URLs for viewing",
	Long: `Resolve a document's attachments to absolute URLs. When a path is
given it is listed first, like opening the viewer centered on it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPicsPreview,
}

func init() {
	rootCmd.AddCommand(picsCmd)
	picsCmd.AddCommand(picsListCmd)
	picsCmd.AddCommand(picsUploadCmd)
	picsCmd.AddCommand(picsDeleteCmd)
	picsCmd.AddCommand(picsPreviewCmd)

	picsDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runPicsList(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx, cancel := e.cmdContext()
	defer cancel()

	pics, err := e.svc.Pics(ctx, args[0])
	if err != nil {
		return fmt.Errorf("fetching pics failed: %w", err)
	}
	printPics(cmd, e.cfg.StaticBase, pics)
	return nil
}

func runPicsUpload(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("pics")
	id, path := args[0], args[1]

	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx, cancel := e.cmdContext()
	defer cancel()

	if err := requireEditable(e, id); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	pics, err := e.svc.UploadPic(ctx, id, filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	log.Info().Str("id", id).Str("file", filepath.Base(path)).Msg("Attachment uploaded")
	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", filepath.Base(path))
	printPics(cmd, e.cfg.StaticBase, pics)
	return nil
}

func runPicsDelete(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("pics")
	id, relPath := args[0], args[1]
	yes, _ := cmd.Flags().GetBool("yes")

	e, err := newEnv()
	if err != nil {
		return err
	}

	if err := requireEditable(e, id); err != nil {
		return err
	}

	if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
		fmt.Sprintf("Delete %s? [y/N] ", relPath)) {
		fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
		return nil
	}

	ctx, cancel := e.cmdContext()
	defer cancel()

	pics, err := e.svc.DeletePic(ctx, id, relPath)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	log.Info().Str("id", id).Str("rel_path", relPath).Msg("Attachment deleted")
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
	printPics(cmd, e.cfg.StaticBase, pics)
	return nil
}

func runPicsPreview(cmd *cobra.Command, args []string) error {
	id := args[0]
	var current string
	if len(args) > 1 {
		current = args[1]
	}

	e, err := newEnv()
	if err != nil {
		return err
	}
	ctx, cancel := e.cmdContext()
	defer cancel()

	pics, err := e.svc.Pics(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching pics failed: %w", err)
	}

	// Center the viewer on the chosen image by listing it first.
	if current != "" {
		ordered := make([]string, 0, len(pics))
		for _, p := range pics {
			if p == current {
				ordered = append([]string{p}, ordered...)
			} else {
				ordered = append(ordered, p)
			}
		}
		pics = ordered
	}

	for _, p := range pics {
		fmt.Fprintln(cmd.OutOrStdout(), reconcile.PicURL(e.cfg.StaticBase, p))
	}
	return nil
}

// requireEditable fetches the document and rejects attachment mutations on
// a locked document for non-admins, before anything is uploaded or
// deleted.
func requireEditable(e *env, id string) error {
	ctx, cancel := e.cmdContext()
	defer cancel()

	doc, err := e.svc.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching detail failed: %w", err)
	}
	if !doc.Editable && !e.sess.Role.IsAdmin() {
		return fmt.Errorf("document %s is locked; attachments cannot be changed", id)
	}
	return nil
}

// confirm reads one line and accepts y/yes (case-insensitive). Anything
// else, including EOF, declines.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func printPics(cmd *cobra.Command, staticBase string, pics []string) {
	if len(pics) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No attachments.")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d attachment(s):\n", len(pics))
	for _, p := range pics {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  (%s)\n", p, reconcile.PicURL(staticBase, p))
	}
}
