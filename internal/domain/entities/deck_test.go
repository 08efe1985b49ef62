package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDeck() *Deck {
	return &Deck{
		ID:    "post",
		Title: "Post",
		Slides: []Slide{
			TitleSlide{Title: "Post", Notes: "Published on 2024-01-01. Tags: go"},
			ContentSlide{Title: "Slide 1", Content: "Hi."},
			NewCodeSlide("go", "x := 1"),
			NewImageSlide("/p.png", "pic"),
		},
		Metadata: DeckMetadata{
			Date:        "2024-01-01",
			Tags:        []string{"go"},
			TotalSlides: 4,
		},
	}
}

func TestDeck_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Deck)
		wantErr string
	}{
		{name: "valid", mutate: func(d *Deck) {}},
		{
			name:    "no slides",
			mutate:  func(d *Deck) { d.Slides = nil; d.Metadata.TotalSlides = 0 },
			wantErr: "deck has no slides",
		},
		{
			name:    "first slide not title",
			mutate:  func(d *Deck) { d.Slides = d.Slides[1:]; d.Metadata.TotalSlides = 3 },
			wantErr: "first slide is content",
		},
		{
			name: "second title slide",
			mutate: func(d *Deck) {
				d.Slides = append(d.Slides, TitleSlide{Title: "Again"})
				d.Metadata.TotalSlides = 5
			},
			wantErr: "title slide at index 4",
		},
		{
			name:    "count mismatch",
			mutate:  func(d *Deck) { d.Metadata.TotalSlides = 3 },
			wantErr: "totalSlides is 3 but deck has 4 slides",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := validDeck()
			tt.mutate(deck)

			err := deck.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDeck)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDeck_Counts(t *testing.T) {
	deck := validDeck()

	assert.Equal(t, 4, deck.SlideCount())
	assert.Equal(t, map[SlideType]int{
		SlideTypeTitle:   1,
		SlideTypeContent: 1,
		SlideTypeCode:    1,
		SlideTypeImage:   1,
	}, deck.CountByType())
}

func TestDeck_JSON(t *testing.T) {
	t.Run("on-demand deck omits generation fields", func(t *testing.T) {
		data, err := json.Marshal(validDeck())
		require.NoError(t, err)

		var generic map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &generic))
		meta := generic["metadata"].(map[string]interface{})

		assert.NotContains(t, meta, "generatedAt")
		assert.NotContains(t, meta, "sourcePost")
		assert.NotContains(t, meta, "author")
		assert.Equal(t, float64(4), meta["totalSlides"])
	})

	t.Run("round trip keeps variants", func(t *testing.T) {
		original := validDeck()
		at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		original.Metadata.GeneratedAt = &at
		original.Metadata.SourcePost = "post"
		original.Metadata.Author = "Ana"

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded Deck
		require.NoError(t, json.Unmarshal(data, &decoded))

		assert.Equal(t, original, &decoded)
		require.NoError(t, decoded.Validate())
	})

	t.Run("bad slide reports its index", func(t *testing.T) {
		var decoded Deck
		err := json.Unmarshal([]byte(`{"id":"x","slides":[{"type":"title"},{"type":"poll"}]}`), &decoded)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slide 1")
	})
}

func TestBuildRecord_IsStale(t *testing.T) {
	raw := []byte("---\ntitle: A\n---\nBody")
	record := BuildRecord{ID: "a", SourceHash: HashSource(raw)}

	assert.False(t, record.IsStale(raw))
	assert.True(t, record.IsStale([]byte("---\ntitle: A\n---\nEdited")))
	assert.Len(t, record.SourceHash, 64)
}
