package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/boardpack/internal/content"
)

// check: every in-page link must land on a section anchor.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate page links against section anchors",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := content.Load(cfg.ContentPath())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := page.Validate(); err != nil {
				problems := []error{err}
				var joined interface{ Unwrap() []error }
				if errors.As(err, &joined) {
					problems = joined.Unwrap()
				}
				for _, problem := range problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", problem)
				}
				return fmt.Errorf("%d content problem(s)", len(problems))
			}
			fmt.Fprintf(out, "✓ %d anchors, %d links\n", len(page.Anchors()), len(page.Links()))
			return nil
		},
	}
}
