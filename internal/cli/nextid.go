package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/quotedesk-api/internal/domain/numbering"
	domainRepo "github.com/sangkips/quotedesk-api/internal/domain/repository"
	"github.com/sangkips/quotedesk-api/internal/infrastructure/repository"
	"github.com/spf13/cobra"
)

// NewNextIDCommand creates the next-id command.
func NewNextIDCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "next-id <party|quotation>",
		Short:     "Show the identifier the next create will receive",
		Long:      "Show the next party code or quotation number without consuming it.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"party", "quotation"},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rootOpts.openMigratedDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var (
				seq  numbering.Sequence
				scan func(ctx context.Context, prefix string) ([]string, error)
			)
			switch args[0] {
			case "party":
				seq = numbering.PartyCodes
				scan = repository.NewPartyRepository(db).Codes
			case "quotation":
				seq = numbering.QuotationNumbers(time.Now())
				scan = repository.NewQuotationRepository(db).NumbersLike
			default:
				return fmt.Errorf("unknown sequence %q: must be party or quotation", args[0])
			}

			next, err := peekNext(ctx, repository.NewCounterRepository(db), seq, scan)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

// peekNext reports the next identifier of seq. A counter that was never
// used is predicted from the stored identifiers.
func peekNext(ctx context.Context, counters domainRepo.CounterRepository, seq numbering.Sequence, scan func(context.Context, string) ([]string, error)) (string, error) {
	current, ok, err := counters.Current(ctx, seq.Name())
	if err != nil {
		return "", err
	}
	if !ok {
		ids, err := scan(ctx, seq.Prefix)
		if err != nil {
			return "", err
		}
		current = seq.Last(ids)
	}
	return seq.Format(current + 1), nil
}
