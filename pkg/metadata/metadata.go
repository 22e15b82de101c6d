// Package metadata signs generated reports with a trailing comment block and verifies them.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- METADATA_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "METADATA_END -->"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
	ErrInvalidRunID    = errors.New("invalid run id")
)

// Metadata describes the run that produced a report.
type Metadata struct {
	RunID      uuid.UUID
	Generated  time.Time
	Hash       string
	Validation bool
}

var blockRegex = regexp.MustCompile(`(?s)\n*<!--\s*METADATA_START\s*\n(.*?)\n\s*METADATA_END\s*-->\n*`)

// Extract splits content into its metadata block and the content that is hashed.
// The returned metadata is nil when no block is present.
func Extract(content string) (*Metadata, string, error) {
	match := blockRegex.FindStringSubmatch(content)
	clean := strings.TrimRight(blockRegex.ReplaceAllString(content, ""), "\n")

	if len(match) < 2 {
		return nil, clean, nil
	}

	meta := &Metadata{}

	for _, line := range strings.Split(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		val = strings.TrimSpace(val)

		switch strings.TrimSpace(key) {
		case "RUN_ID":
			id, err := uuid.Parse(val)
			if err != nil {
				return nil, clean, fmt.Errorf("%w: %q", ErrInvalidRunID, val)
			}

			meta.RunID = id
		case "GENERATED":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.Generated = t
			}
		case "HASH":
			meta.Hash = val
		case "VALIDATION":
			meta.Validation = strings.EqualFold(val, "TRUE")
		}
	}

	return meta, clean, nil
}

// CalculateHash returns the hex SHA-256 of content with any metadata block removed.
func CalculateHash(content string) string {
	_, clean, _ := Extract(content)
	sum := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(sum[:])
}

// Sign replaces any existing block with a fresh one for runID.
// validated records whether every input dataset passed schema validation.
func Sign(content string, runID uuid.UUID, validated bool, now time.Time) string {
	_, clean, _ := Extract(content)

	valStr := "FALSE"
	if validated {
		valStr = "TRUE"
	}

	return fmt.Sprintf("%s\n\n%s\nRUN_ID: %s\nGENERATED: %s\nVALIDATION: %s\nHASH: %s\n%s\n",
		clean, TagStart, runID, now.UTC().Format(time.RFC3339), valStr, CalculateHash(clean), TagEnd)
}

// Verify checks that content still matches the hash in its metadata block.
func Verify(content string) (*Metadata, error) {
	meta, clean, err := Extract(content)
	if err != nil {
		return nil, err
	}

	if meta == nil {
		return nil, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return meta, ErrNoHashFound
	}

	if calculated := CalculateHash(clean); calculated != meta.Hash {
		return meta, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return meta, nil
}
