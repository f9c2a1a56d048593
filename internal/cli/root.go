// Package cli provides the command-line interface for docchat.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/legalease/docchat-go/internal/api"
	"github.com/legalease/docchat-go/internal/auth"
	"github.com/legalease/docchat-go/internal/config"
	"github.com/legalease/docchat-go/internal/session"
	"github.com/legalease/docchat-go/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global config and shared clients, wired in PersistentPreRunE
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
	store    *session.Store
	client   *api.Client
	authSvc  *auth.Service
)

// rootCmd represents the base command. Without a subcommand it starts the
// interactive terminal UI.
var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your legal documents",
	Long: `Docchat is a terminal client for the LegalEase document-chat service.

Upload a PDF or text document and ask questions grounded in its content,
or use the legal chat for general legal information without a document.

Run without arguments for the interactive UI, or use the subcommands
for scripting.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip wiring for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()
		logger, closeLog = config.SetupLogger(cfg)

		var err error
		store, err = session.Open(cfg.StateFile)
		if err != nil {
			return fmt.Errorf("open session state: %w", err)
		}

		client = api.New(cfg.ServerURL, cfg.Timeout, store, logger)
		authSvc = auth.NewService(client, store)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			if err := closeLog(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(tui.Deps{
			Config: cfg,
			Store:  store,
			Client: client,
			Auth:   authSvc,
			Logger: logger,
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(legalCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(documentCmd)
}
