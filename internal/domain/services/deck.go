package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/fredcamaral/blogdeck/internal/domain/entities"
	"github.com/fredcamaral/blogdeck/internal/domain/ports"
)

// DeckService converts documents into decks. Generate and GenerateAll persist
// artifacts; Build and GetDeckByID return decks in memory. All of them go
// through Assemble.
type DeckService struct {
	repo     ports.DocumentRepository
	writer   ports.DeckWriter
	manifest ports.ManifestStore
	clock    ports.Clock
	logger   *slog.Logger
	maxChars int
}

// NewDeckService creates a new deck service. manifest may be nil; a nil clock
// uses the wall clock and a nil logger uses slog.Default().
func NewDeckService(
	repo ports.DocumentRepository,
	writer ports.DeckWriter,
	manifest ports.ManifestStore,
	clock ports.Clock,
	logger *slog.Logger,
	maxChars int,
) *DeckService {
	if clock == nil {
		clock = ports.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if maxChars <= 0 {
		maxChars = entities.DefaultMaxChars
	}

	return &DeckService{
		repo:     repo,
		writer:   writer,
		manifest: manifest,
		clock:    clock,
		logger:   logger,
		maxChars: maxChars,
	}
}

// MaxChars returns the grouping threshold the service segments with
func (s *DeckService) MaxChars() int {
	return s.maxChars
}

// Build assembles the deck for an already loaded document without any I/O
func (s *DeckService) Build(doc entities.Document) *entities.Deck {
	return Assemble(doc.ID, doc.Meta, doc.Body, s.maxChars)
}

// GetDeckByID builds the deck of the document with the given id, or returns
// nil when docs holds no such document
func (s *DeckService) GetDeckByID(id string, docs []entities.Document) *entities.Deck {
	for i := range docs {
		if docs[i].ID == id {
			return s.Build(docs[i])
		}
	}
	return nil
}

// Generate loads one document, assembles its deck, stamps it and writes the artifact
func (s *DeckService) Generate(ctx context.Context, id string) (*ports.GenerateResult, error) {
	if id == "" {
		return nil, errors.New("document id cannot be empty")
	}

	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	return s.generate(ctx, doc)
}

// GenerateAll writes artifacts for every document in the repository, running
// up to concurrency conversions at once. Results are ordered by document id.
// The first failure cancels the remaining conversions.
func (s *DeckService) GenerateAll(ctx context.Context, concurrency int) ([]ports.GenerateResult, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]ports.GenerateResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range docs {
		doc := &docs[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := s.generate(gctx, doc)
			if err != nil {
				return fmt.Errorf("document %s: %w", doc.ID, err)
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("Generated decks", slog.Int("count", len(results)))
	return results, nil
}

func (s *DeckService) generate(ctx context.Context, doc *entities.Document) (*ports.GenerateResult, error) {
	deck := s.Build(*doc)

	generatedAt := s.clock.Now().UTC()
	deck.Metadata.GeneratedAt = &generatedAt
	deck.Metadata.SourcePost = doc.ID

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	path, err := s.writer.Write(ctx, deck)
	if err != nil {
		return nil, fmt.Errorf("writing deck %s: %w", doc.ID, err)
	}

	if s.manifest != nil {
		record := entities.BuildRecord{
			ID:          doc.ID,
			Path:        path,
			SourceHash:  entities.HashSource(doc.Raw),
			TotalSlides: deck.Metadata.TotalSlides,
			GeneratedAt: generatedAt,
		}
		if err := s.manifest.Put(ctx, record); err != nil {
			s.logger.Warn("Failed to record build",
				slog.String("id", doc.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Debug("Generated deck",
		slog.String("id", doc.ID),
		slog.String("path", path),
		slog.Int("slides", deck.Metadata.TotalSlides),
	)

	return &ports.GenerateResult{
		ID:   doc.ID,
		Path: path,
		Deck: deck,
	}, nil
}

// Ensure DeckService implements the deck ports
var (
	_ ports.DeckGenerator = (*DeckService)(nil)
	_ ports.DeckProvider  = (*DeckService)(nil)
)
