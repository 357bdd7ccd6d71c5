package data

import "sort"

// ClassDistribution maps each category name to its number of qualifying images.
// Every enumerated category is present, including those with zero images.
type ClassDistribution map[string]int

// CountImages builds the class distribution for the given categories.
func CountImages(cats []Category, filter ExtFilter) (ClassDistribution, error) {
	dist := make(ClassDistribution, len(cats))
	for _, c := range cats {
		paths, err := ListImages(c, filter)
		if err != nil {
			return nil, err
		}
		dist[c.Name] = len(paths)
	}
	return dist, nil
}

// Total is the sum of all counts.
func (d ClassDistribution) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// Labels returns the category names in sorted order.
func (d ClassDistribution) Labels() []string {
	labels := make([]string, 0, len(d))
	for l := range d {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
