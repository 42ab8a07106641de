package pipeline

import (
	"context"

	"github.com/fwojciec/linkpreview"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of previews run at once when
// BatchPreviewer.Concurrency is not set.
const DefaultConcurrency = 4

// Result is the outcome of previewing one URL in a batch.
type Result struct {
	URL      string
	Metadata *linkpreview.Metadata

	// Duplicate is set when URL was already scheduled earlier in the batch.
	// Neither Metadata nor Err is set for duplicates.
	Duplicate bool

	Err error
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is called as each URL finishes.
type ProgressFunc func(ProgressEvent)

// BatchPreviewer previews many URLs with bounded concurrency.
type BatchPreviewer struct {
	Previewer   linkpreview.Previewer
	RateLimiter linkpreview.DomainLimiter // optional
	Seen        linkpreview.URLSet        // optional
	Concurrency int
}

type batchItem struct {
	position int
	result   *Result
}

// PreviewAll previews urls and returns one Result per input, in input
// order. A failure for one URL never stops the others. Invalid URLs are
// reported with EINVALID without waiting on the rate limiter. If ctx is
// canceled, unfinished URLs carry the context error and it is also
// returned.
func (b *BatchPreviewer) PreviewAll(ctx context.Context, urls []string, progress ProgressFunc) ([]*Result, error) {
	results := make([]*Result, len(urls))
	total := len(urls)
	completed := 0

	report := func(r *Result) {
		completed++
		if progress != nil {
			progress(ProgressEvent{
				URL:       r.URL,
				Completed: completed,
				Total:     total,
				Error:     r.Err,
			})
		}
	}

	// Validate and deduplicate sequentially so that the first occurrence
	// of a URL is always the one previewed.
	var pending []int
	for i, raw := range urls {
		results[i] = &Result{URL: raw}
		u, err := linkpreview.ParseURL(raw)
		if err != nil {
			results[i].Err = err
			report(results[i])
			continue
		}
		if b.Seen != nil && !b.Seen.Add(u.String()) {
			results[i].Duplicate = true
			report(results[i])
			continue
		}
		pending = append(pending, i)
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	itemCh := make(chan batchItem, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, i := range pending {
			g.Go(func() error {
				itemCh <- batchItem{position: i, result: b.previewOne(gctx, results[i].URL)}
				return nil
			})
		}
		_ = g.Wait()
		close(itemCh)
	}()

	for item := range itemCh {
		results[item.position] = item.result
		report(item.result)
	}

	return results, ctx.Err()
}

func (b *BatchPreviewer) previewOne(ctx context.Context, rawURL string) *Result {
	result := &Result{URL: rawURL}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	if b.RateLimiter != nil {
		// ParseURL already succeeded for every scheduled URL.
		u, _ := linkpreview.ParseURL(rawURL)
		if err := b.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			result.Err = err
			return result
		}
	}

	result.Metadata, result.Err = b.Previewer.Preview(ctx, rawURL)
	return result
}
