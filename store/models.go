package store

import (
	"time"

	"gorm.io/datatypes"
)

// CachedPattern is a compiled Matcher/Template plan keyed by a content hash
// of the placeholder-bearing fragment it was compiled from, so repeated
// CLI invocations over the same phase set skip recompilation (SPEC_FULL.md
// §4.H).
type CachedPattern struct {
	FragmentHash      string `gorm:"primaryKey;type:varchar(64)"`
	PlaceholderPrefix string `gorm:"type:varchar(20);not null"`
	ParseShape        int    `gorm:"not null"`

	// ReplacementKinds is a JSON bag describing each hole's kind
	// (identifier vs node), keyed by hole name.
	ReplacementKinds datatypes.JSONMap `gorm:"type:text"`

	// Digest is an opaque serialized form of the compiled query/pattern,
	// produced by the caller; store does not interpret it.
	Digest string `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CachedPattern) TableName() string { return "cached_pattern" }
