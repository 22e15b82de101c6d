package models

// Table describes the shape of a loaded CSV file.
type Table struct {
	Name    string
	Path    string
	Columns []string
	Rows    int
	// Head keeps the first raw rows for previews.
	Head [][]string
	// Warnings are the validation warnings raised while loading.
	Warnings []string
}

// Datasets groups every input table of an analysis run.
// A nil slice together with a nil table means the input was unavailable.
type Datasets struct {
	Awards    []AwardRecord
	Chart     []ChartEntry
	Artists   []ArtistStat
	Producers []ProducerNomination

	AwardsTable    *Table
	ChartTable     *Table
	ArtistsTable   *Table
	ProducersTable *Table
}

// HasAwards reports whether the awards table was loaded.
func (d *Datasets) HasAwards() bool { return d != nil && d.AwardsTable != nil }

// HasChart reports whether the streaming chart was loaded.
func (d *Datasets) HasChart() bool { return d != nil && d.ChartTable != nil }

// HasArtists reports whether the artist roster was loaded.
func (d *Datasets) HasArtists() bool { return d != nil && d.ArtistsTable != nil }

// HasProducers reports whether the producer table was loaded.
func (d *Datasets) HasProducers() bool { return d != nil && d.ProducersTable != nil }

// Winners returns the award records flagged as winners.
func (d *Datasets) Winners() []AwardRecord {
	var winners []AwardRecord

	for _, rec := range d.Awards {
		if rec.Winner {
			winners = append(winners, rec)
		}
	}

	return winners
}
