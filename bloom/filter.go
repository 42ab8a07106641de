// Package bloom provides probabilistic URL deduplication using Bloom filters.
package bloom

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/linkpreview"
)

var _ linkpreview.URLSet = (*Filter)(nil)

// Filter is a URLSet backed by a Bloom filter. A false positive makes Add
// report a never-seen URL as a duplicate; false negatives are impossible.
// Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records url, ignoring any fragment, and returns false if it
// was probably added before.
func (f *Filter) Add(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.f.TestAndAddString(stripFragment(url))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
