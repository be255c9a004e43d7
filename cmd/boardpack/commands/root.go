package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/boardpack/internal/config"
	"github.com/kingrea/boardpack/internal/leads"
	"github.com/kingrea/boardpack/internal/leads/sqlite"
	"github.com/kingrea/boardpack/internal/logging"
	"github.com/kingrea/boardpack/internal/tui"
)

var (
	projectDir  string
	contentPath string
	cfg         *config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	projectDir, contentPath, cfg = "", "", nil
	root := &cobra.Command{
		Use:          "boardpack",
		Short:        "BoardPackNYC landing page in your terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if projectDir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				projectDir = cwd
			}
			if err := config.InitDir(projectDir); err != nil {
				return fmt.Errorf("initialize %s: %w", config.ProjectDirName, err)
			}
			loaded, err := config.NewConfig(projectDir)
			if err != nil {
				return err
			}
			if contentPath != "" {
				loaded.SetContentPath(contentPath)
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPage()
		},
	}

	root.PersistentFlags().StringVar(&projectDir, "dir", "", "project directory holding .boardpack (default current directory)")
	root.PersistentFlags().StringVar(&contentPath, "content", "", "YAML file replacing the bundled page copy")

	root.AddCommand(checkCmd(), leadsCmd())
	return root
}

// runPage opens the terminal page and, once the user quits, drains pending
// lead deliveries.
func runPage() error {
	logger, err := logging.New(cfg.LogsDir())
	if err != nil {
		return err
	}
	defer logger.Close()

	sinks, store, err := openSinks(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.Printf("leads: close sqlite store: %v", err)
			}
		}()
	}

	settings := cfg.Leads()
	dispatcher := leads.NewDispatcher(sinks,
		leads.WithQueueSize(settings.QueueSize),
		leads.WithDeliveryTimeout(settings.DeliveryTimeout),
		leads.WithSource(leads.SourceTerminal),
		leads.WithLogger(logger),
	)

	app, err := tui.NewApp(cfg, tui.WithReporter(dispatcher), tui.WithLogger(logger))
	if err != nil {
		_ = dispatcher.Close(context.Background())
		return err
	}
	logger.Printf("session opened in %s", cfg.ProjectDir)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, runErr := p.Run()
	app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), settings.DeliveryTimeout+time.Second)
	defer cancel()
	if err := dispatcher.Close(ctx); err != nil {
		logger.Printf("leads: shutdown: %v", err)
	}
	logger.Printf("session closed")

	if runErr != nil {
		return fmt.Errorf("run terminal page: %w", runErr)
	}
	return nil
}

// openSinks builds the configured lead sinks. The SQLite store is returned
// separately so the caller can close it.
func openSinks(cfg *config.Config) ([]leads.Sink, *sqlite.Store, error) {
	settings := cfg.Leads()
	var (
		sinks []leads.Sink
		store *sqlite.Store
	)
	if settings.Journal {
		journal, err := leads.NewJournal(cfg.JournalPath())
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, journal)
	}
	if settings.SQLite {
		opened, err := sqlite.Open(cfg.DatabasePath())
		if err != nil {
			return nil, nil, err
		}
		store = opened
		sinks = append(sinks, store)
	}
	if settings.WebhookURL != "" {
		sinks = append(sinks, leads.NewWebhook(settings.WebhookURL))
	}
	return sinks, store, nil
}
