package optimizer

import "sort"

// rank orders options by descending density. Equal densities keep
// generation order, which the sequence number makes explicit.
func rank(options []*Option) {
	sort.SliceStable(options, func(i, j int) bool {
		if c := options[i].density.Cmp(options[j].density); c != 0 {
			return c > 0
		}
		return options[i].seq < options[j].seq
	})
}
