package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// Build states reported by status
const (
	stateFresh   = "fresh"
	stateStale   = "stale"
	stateMissing = "missing"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List generated decks and whether their posts changed since",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			path := a.cfg.Output.GetManifestPath()
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(cmd.OutOrStdout(), "No decks generated yet")
				return nil
			}

			buildManifest, closeManifest := a.openManifest()
			defer closeManifest()
			if buildManifest == nil {
				return fmt.Errorf("build manifest %s cannot be opened", path)
			}

			records, err := buildManifest.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No decks generated yet")
				return nil
			}

			return printStatus(cmd.Context(), cmd.OutOrStdout(), a.repository(), records)
		},
	}
}

func printStatus(ctx context.Context, w io.Writer, repo ports.DocumentRepository, records []entities.BuildRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATE\tSLIDES\tGENERATED\tPATH")

	for _, record := range records {
		state, err := buildState(ctx, repo, record)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			record.ID,
			state,
			record.TotalSlides,
			record.GeneratedAt.Format(time.RFC3339),
			record.Path,
		)
	}

	return tw.Flush()
}

func buildState(ctx context.Context, repo ports.DocumentRepository, record entities.BuildRecord) (string, error) {
	doc, err := repo.Get(ctx, record.ID)
	if errors.Is(err, entities.ErrDocumentNotFound) {
		return stateMissing, nil
	}
	if err != nil {
		return "", err
	}
	if record.IsStale(doc.Raw) {
		return stateStale, nil
	}
	return stateFresh, nil
}
