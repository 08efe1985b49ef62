package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/blogdeck/internal/domain/ports"
	"github.com/fredcamaral/blogdeck/internal/domain/services"
)

func newGenerateCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "generate <id>",
		Short: "Write the deck artifact for a post",
		Long: `Convert one post (or every post with --all) into a deck and write it
as <output-dir>/<id>.json.

Example:
  blogdeck generate hello-world
  blogdeck generate --all --concurrency 8`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				if len(args) > 0 {
					return errors.New("--all does not take a post id")
				}
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, collectFlags(cmd, "concurrency"))
			if err != nil {
				return err
			}
			defer a.close()

			buildManifest, closeManifest := a.openManifest()
			defer closeManifest()

			var decks ports.DeckGenerator = services.NewDeckService(
				a.repository(),
				a.store(),
				buildManifest,
				nil,
				a.logger,
				a.cfg.Segmenter.GetMaxChars(),
			)

			var results []ports.GenerateResult
			if all {
				results, err = decks.GenerateAll(cmd.Context(), a.cfg.Generate.GetConcurrency())
				if err != nil {
					return err
				}
			} else {
				result, err := decks.Generate(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				results = append(results, *result)
			}

			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %s (%d slides)\n", r.Path, r.Deck.Metadata.TotalSlides)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Generate decks for every post")
	cmd.Flags().Int("concurrency", 0, "Parallel conversions with --all (overrides config)")

	return cmd
}
