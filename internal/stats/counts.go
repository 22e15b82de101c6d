package stats

import "sort"

// Count is one label with its number of occurrences.
type Count struct {
	Label string
	N     int
}

// ValueCounts counts labels, most frequent first. Ties keep first-seen order.
// Empty labels are ignored.
func ValueCounts(labels []string) []Count {
	index := make(map[string]int)

	var counts []Count

	for _, l := range labels {
		if l == "" {
			continue
		}

		if i, ok := index[l]; ok {
			counts[i].N++
			continue
		}

		index[l] = len(counts)
		counts = append(counts, Count{Label: l, N: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].N > counts[j].N
	})

	return counts
}

// Head returns the first n counts.
func Head(counts []Count, n int) []Count {
	if n > 0 && len(counts) > n {
		return counts[:n]
	}

	return counts
}

// IntCounts counts integer keys and returns them in ascending key order.
func IntCounts(keys []int) ([]int, []int) {
	tally := make(map[int]int)
	for _, k := range keys {
		tally[k]++
	}

	sortedKeys := make([]int, 0, len(tally))
	for k := range tally {
		sortedKeys = append(sortedKeys, k)
	}

	sort.Ints(sortedKeys)

	counts := make([]int, len(sortedKeys))
	for i, k := range sortedKeys {
		counts[i] = tally[k]
	}

	return sortedKeys, counts
}
