package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
)

const previewWidth = 48

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <id>",
		Short: "Print the slides of a generated deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, nil)
			if err != nil {
				return err
			}
			defer a.close()

			deck, err := a.store().Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printDeck(cmd.OutOrStdout(), deck)
		},
	}
}

func printDeck(w io.Writer, deck *entities.Deck) error {
	fmt.Fprintf(w, "Deck:      %s\n", deck.ID)
	fmt.Fprintf(w, "Title:     %s\n", deck.Title)
	if deck.Metadata.Author != "" {
		fmt.Fprintf(w, "Author:    %s\n", deck.Metadata.Author)
	}
	fmt.Fprintf(w, "Date:      %s\n", deck.Metadata.Date)
	if len(deck.Metadata.Tags) > 0 {
		fmt.Fprintf(w, "Tags:      %s\n", strings.Join(deck.Metadata.Tags, ", "))
	}
	if deck.Metadata.GeneratedAt != nil {
		fmt.Fprintf(w, "Generated: %s\n", deck.Metadata.GeneratedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Slides:    %d\n\n", deck.Metadata.TotalSlides)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tTITLE\tDETAIL")
	for i, slide := range deck.Slides {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, slide.Type(), slide.Heading(), slideDetail(slide))
	}
	return tw.Flush()
}

func slideDetail(slide entities.Slide) string {
	switch s := slide.(type) {
	case entities.TitleSlide:
		return preview(s.Notes)
	case entities.ContentSlide:
		return preview(s.Content)
	case entities.CodeSlide:
		return fmt.Sprintf("%s, %d lines", s.Language, strings.Count(s.Content, "\n")+1)
	case entities.ImageSlide:
		return s.Src
	default:
		return ""
	}
}

// preview flattens text to one line and truncates it to previewWidth runes
func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= previewWidth {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewWidth-3]) + "..."
}
