package cli

import (
	"context"
	"fmt"

	"github.com/legalease/docchat-go/internal/chat"
	"github.com/spf13/cobra"
)

var legalHistory bool

var legalCmd = &cobra.Command{
	Use:   "legal <question>",
	Short: "Ask a general legal question (no document required)",
	Long: `Ask a single general legal-information question and print the answer.
This uses the document-free legal chat; the response is general
information, not legal advice.

Examples:
  docchat legal "What is a statute of limitations?"
  docchat legal "Explain tenant rights" --history`,
	Args: cobra.ExactArgs(1),
	RunE: runLegal,
}

func init() {
	legalCmd.Flags().BoolVar(&legalHistory, "history", false, "send the question through the transcript-based endpoint")
}

func runLegal(cmd *cobra.Command, args []string) error {
	controller := chat.NewLegalController(client)
	if legalHistory {
		controller = controller.WithHistory()
	}

	reply, err := controller.Send(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(reply.Content)
	return nil
}
