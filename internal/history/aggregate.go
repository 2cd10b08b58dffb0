package history

import "sort"

// Aggregate merges batches into one slice ordered newest first. Visits with
// equal timestamps keep the order in which their batches were given.
func Aggregate(batches ...[]VisitRecord) []VisitRecord {
	n := 0
	for _, b := range batches {
		n += len(b)
	}

	all := make([]VisitRecord, 0, n)
	for _, b := range batches {
		all = append(all, b...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].VisitTime.After(all[j].VisitTime)
	})
	return all
}
