package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"grammystats/internal/formatter"
	"grammystats/pkg/metadata"
)

// VerifyReport checks a signed report file against its metadata hash.
func VerifyReport(path string) (*metadata.Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	return metadata.Verify(string(content))
}

// FormatReport realigns the tables of a markdown file and re-signs it,
// keeping the run id of an existing block. It reports whether the file
// differs from its formatted form; with write set the file is rewritten.
func FormatReport(path string, write bool, now time.Time) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	meta, clean, err := metadata.Extract(string(content))
	if err != nil {
		return false, err
	}

	formatted, err := formatter.FormatMarkdown(clean)
	if err != nil {
		return false, err
	}

	runID, validated := uuid.New(), false
	if meta != nil {
		runID, validated = meta.RunID, meta.Validation
	}

	_, verifyErr := metadata.Verify(string(content))
	changed := formatted != clean || verifyErr != nil

	if !changed || !write {
		return changed, nil
	}

	signed := metadata.Sign(formatted, runID, validated, now)

	if err := os.WriteFile(path, []byte(signed), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return true, nil
}
