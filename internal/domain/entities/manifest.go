package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// BuildRecord describes one persisted deck artifact
type BuildRecord struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	SourceHash  string    `json:"sourceHash"`
	TotalSlides int       `json:"totalSlides"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// IsStale reports whether the source content no longer matches the recorded build
func (r BuildRecord) IsStale(raw []byte) bool {
	return r.SourceHash != HashSource(raw)
}

// HashSource returns the hex sha256 of a raw source document
func HashSource(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
