// Package stats computes descriptive statistics over annotated trips.
//
// Every function is a read-only pass over its input. Single-winner modes
// break ties by the smallest key; see Counter.Mode.
package stats

import (
	"cmp"
	"slices"
)

// Counter is a frequency table over comparable keys.
type Counter[K cmp.Ordered] struct {
	counts map[K]int
}

// NewCounter returns an empty counter.
func NewCounter[K cmp.Ordered]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add records one occurrence of key.
func (c *Counter[K]) Add(key K) {
	c.counts[key]++
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.counts)
}

// Get returns the count for key.
func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Mode returns the key with the highest count. Ties go to the smallest key.
// ok is false when the counter is empty.
func (c *Counter[K]) Mode() (key K, count int, ok bool) {
	for k, n := range c.counts {
		if !ok || n > count || (n == count && k < key) {
			key, count, ok = k, n, true
		}
	}
	return key, count, ok
}

// Modes returns every key tied for the highest count, in ascending order.
func (c *Counter[K]) Modes() (keys []K, count int) {
	for k, n := range c.counts {
		switch {
		case n > count:
			keys = append(keys[:0], k)
			count = n
		case n == count:
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, count
}

// Entry is one row of a sorted frequency table.
type Entry[K cmp.Ordered] struct {
	Key   K
	Count int
}

// Sorted returns the table ordered by count descending, then key ascending.
func (c *Counter[K]) Sorted() []Entry[K] {
	entries := make([]Entry[K], 0, len(c.counts))
	for k, n := range c.counts {
		entries = append(entries, Entry[K]{Key: k, Count: n})
	}
	slices.SortFunc(entries, func(a, b Entry[K]) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return entries
}
