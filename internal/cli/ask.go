package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/legalease/docchat-go/internal/chat"
	"github.com/spf13/cobra"
)

var askModel string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about the active document",
	Long: `Ask a single question grounded in the active document and print the
answer. Upload a document first with the upload command.

Examples:
  docchat ask "What are the termination clauses?"
  docchat ask "Summarize this document" --model llama3.1`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "model to use (defaults to the configured model)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	model := askModel
	if model == "" {
		model = cfg.Model
	}

	controller := chat.NewController(client, store, model)
	reply, err := controller.Send(context.Background(), args[0])
	if errors.Is(err, chat.ErrNoDocument) {
		return fmt.Errorf("no active document; upload one first with 'docchat upload'")
	}
	if err != nil {
		return err
	}

	fmt.Println(reply.Content)
	return nil
}
