package commands

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kingrea/boardpack/internal/leads"
	"github.com/kingrea/boardpack/internal/leads/sqlite"
	"github.com/kingrea/boardpack/internal/widget"
)

var limit int

// leads: newest captured leads, from SQLite when enabled, else the journal.
func leadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "List recently captured early-access leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			recent, counts, err := loadLeads(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recent) == 0 {
				fmt.Fprintln(out, "No leads captured yet.")
				return nil
			}
			fmt.Fprintln(out, renderLeads(recent))
			if counts != nil {
				fmt.Fprintf(out, "%d buyers, %d agents in total\n", counts[widget.RoleBuyer], counts[widget.RoleAgent])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "how many leads to show")
	return cmd
}

func loadLeads(ctx context.Context, n int) ([]leads.Lead, map[widget.Role]int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Leads().SQLite {
		store, err := sqlite.Open(cfg.DatabasePath())
		if err != nil {
			return nil, nil, err
		}
		defer store.Close()
		recent, err := store.Recent(ctx, n)
		if err != nil {
			return nil, nil, err
		}
		counts, err := store.Count(ctx)
		if err != nil {
			return nil, nil, err
		}
		return recent, counts, nil
	}
	journal, err := leads.NewJournal(cfg.JournalPath())
	if err != nil {
		return nil, nil, err
	}
	recent, err := journal.Tail(n)
	if err != nil {
		return nil, nil, err
	}
	slices.Reverse(recent)
	return recent, nil, nil
}

func renderLeads(recent []leads.Lead) string {
	rows := make([][]string, 0, len(recent))
	for _, lead := range recent {
		rows = append(rows, []string{
			lead.CapturedAt.Local().Format(time.DateTime),
			lead.Role.String(),
			lead.Email,
			lead.Source,
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		Headers("CAPTURED", "ROLE", "EMAIL", "SOURCE").
		Rows(rows...).
		String()
}
