// Package matcher decides whether chart entries belong to the award-winner set.
package matcher

import (
	"sort"

	"grammystats/internal/models"
	"grammystats/internal/normalizer"
	"grammystats/internal/stats"
)

// WinnerSet is a set of canonical winner keys, compared case-insensitively.
type WinnerSet struct {
	keys map[string]struct{}
}

// NewWinnerSet builds a set from canonical keys. Empty keys are skipped.
func NewWinnerSet(keys []string) *WinnerSet {
	s := &WinnerSet{keys: make(map[string]struct{}, len(keys))}

	for _, k := range keys {
		folded := normalizer.Fold(k)
		if folded == "" {
			continue
		}

		s.keys[folded] = struct{}{}
	}

	return s
}

// FromAwards builds the winner set from the winning records' nominees.
func FromAwards(records []models.AwardRecord, n *normalizer.Normalizer) *WinnerSet {
	keys := make([]string, 0, len(records))

	for _, rec := range records {
		if rec.Winner {
			keys = append(keys, n.Key(rec.Nominee))
		}
	}

	return NewWinnerSet(keys)
}

// Contains reports whether key is a winner. The empty key never matches.
func (s *WinnerSet) Contains(key string) bool {
	if s == nil || key == "" {
		return false
	}

	_, ok := s.keys[normalizer.Fold(key)]

	return ok
}

// Len returns the number of distinct winner keys.
func (s *WinnerSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.keys)
}

// Keys returns the winner keys in sorted order.
func (s *WinnerSet) Keys() []string {
	if s == nil {
		return nil
	}

	keys := make([]string, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Partition splits items into matched and unmatched by their key.
// Every item lands in exactly one side; input order is kept.
func Partition[T any](items []T, set *WinnerSet, key func(T) string) (matched, unmatched []T) {
	for _, item := range items {
		if set.Contains(key(item)) {
			matched = append(matched, item)
		} else {
			unmatched = append(unmatched, item)
		}
	}

	return matched, unmatched
}

// MarkChart sets the Winner flag on every chart entry and returns both partitions.
func MarkChart(entries []models.ChartEntry, set *WinnerSet) (matched, unmatched []models.ChartEntry) {
	for i := range entries {
		entries[i].Winner = set.Contains(entries[i].Key)
	}

	return Partition(entries, set, chartKey)
}

// MarkArtists sets the Winner flag on every roster row and returns both partitions.
func MarkArtists(artists []models.ArtistStat, set *WinnerSet) (matched, unmatched []models.ArtistStat) {
	for i := range artists {
		artists[i].Winner = set.Contains(artists[i].Key)
	}

	return Partition(artists, set, func(a models.ArtistStat) string { return a.Key })
}

func chartKey(e models.ChartEntry) string { return e.Key }

// Snubbed returns the unmatched items whose metric exceeds the given
// quantile of the matched items, highest first, at most n (n <= 0 keeps all).
// ok is false when the matched side is empty and no threshold exists.
func Snubbed[T any](matched, unmatched []T, metric func(T) float64, percentile float64, n int) (result []T, threshold float64, ok bool) {
	if len(matched) == 0 {
		return nil, 0, false
	}

	values := make([]float64, len(matched))
	for i, m := range matched {
		values[i] = metric(m)
	}

	threshold = stats.Quantile(values, percentile)

	for _, u := range unmatched {
		if metric(u) > threshold {
			result = append(result, u)
		}
	}

	result = stats.TopN(result, n, metric)

	return result, threshold, true
}

// DistinctKeys returns the distinct non-empty keys of entries, sorted.
func DistinctKeys(entries []models.ChartEntry) []string {
	seen := make(map[string]struct{})

	var keys []string

	for _, e := range entries {
		if e.Key == "" {
			continue
		}

		if _, dup := seen[e.Key]; dup {
			continue
		}

		seen[e.Key] = struct{}{}
		keys = append(keys, e.Key)
	}

	sort.Strings(keys)

	return keys
}
