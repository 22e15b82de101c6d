package normalizer

import (
	"errors"

	"grammystats/internal/models"
)

// ErrNilDatasets is returned when Process receives no datasets.
var ErrNilDatasets = errors.New("invalid input: datasets are nil")

// Processor derives artist, title and key fields on loaded datasets.
type Processor struct {
	normalizer *Normalizer
}

// NewProcessor creates a processor using the given normalizer.
func NewProcessor(n *Normalizer) *Processor {
	if n == nil {
		n = New(DefaultOptions())
	}

	return &Processor{normalizer: n}
}

// Process fills ChartEntry.Artist, Title and Key and ArtistStat.Key in place.
func (p *Processor) Process(ds *models.Datasets) error {
	if ds == nil {
		return ErrNilDatasets
	}

	for i := range ds.Chart {
		entry := &ds.Chart[i]
		entry.Artist, entry.Title = SplitCredit(entry.Credit)
		entry.Key = p.normalizer.Key(entry.Artist)
	}

	for i := range ds.Artists {
		ds.Artists[i].Key = p.normalizer.Key(ds.Artists[i].Artist)
	}

	return nil
}
