package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available on the server",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

var documentCmd = &cobra.Command{
	Use:   "document [id]",
	Short: "Show a document's metadata and preview",
	Long: `Show metadata and a text preview for a document. Without an id the
active document is shown.

Examples:
  docchat document
  docchat document 3f2a09c4-1b7e-4d6a-9c1f-8e5b2d7a4f10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocument,
}

func runModels(cmd *cobra.Command, args []string) error {
	models, err := client.ListModels(context.Background())
	if err != nil {
		return err
	}

	if len(models) == 0 {
		fmt.Println("No models available.")
		return nil
	}
	for _, m := range models {
		if m == cfg.Model {
			fmt.Printf("%s (default)\n", m)
		} else {
			fmt.Println(m)
		}
	}
	return nil
}

func runDocument(cmd *cobra.Command, args []string) error {
	id := ""
	if len(args) == 1 {
		id = args[0]
	} else if doc, ok := store.Document(); ok {
		id = doc.DocumentID
	} else {
		return fmt.Errorf("no active document; pass an id or upload one first")
	}

	info, err := client.GetDocument(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", info.Filename, info.ID)
	fmt.Printf("Text length: %d characters\n", info.TextLength)
	if info.Preview != "" {
		fmt.Printf("\n%s\n", info.Preview)
	}
	return nil
}
