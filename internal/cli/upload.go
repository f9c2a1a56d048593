package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document and make it the active one",
	Long: `Upload a PDF or text document. The uploaded document becomes the
active document for subsequent ask commands and chat sessions.

Examples:
  docchat upload contract.pdf
  docchat upload ~/docs/lease-agreement.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	resp, err := client.UploadDocument(context.Background(), filepath.Base(path), f)
	if err != nil {
		return err
	}

	if err := store.BindDocument(resp.DocumentID, resp.Filename); err != nil {
		return fmt.Errorf("save document binding: %w", err)
	}

	fmt.Printf("Uploaded %s (%d characters extracted)\n", resp.Filename, resp.TextLength)
	fmt.Printf("Document ID: %s\n", resp.DocumentID)
	return nil
}
