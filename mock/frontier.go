package mock

import (
	"context"

	"github.com/fwojciec/linkpreview"
)

var _ linkpreview.URLSet = (*URLSet)(nil)

// URLSet is a mock implementation of linkpreview.URLSet.
type URLSet struct {
	AddFn func(url string) bool
}

func (s *URLSet) Add(url string) bool {
	return s.AddFn(url)
}

var _ linkpreview.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of linkpreview.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
