package fetcher

import (
	"log"
	"time"

	"StepSentinel/internal/model"
)

// RetryPolicy bounds per-offset retries during pagination.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// ProgressFunc receives the running record count after each page.
type ProgressFunc func(fetched int)

// Paginator drives the paginated player fetch: fixed page size, fixed
// pacing between pages, bounded retry at each offset.
type Paginator struct {
	Client    Client
	Retry     RetryPolicy
	PageDelay time.Duration
	Progress  ProgressFunc
	Sleep     func(time.Duration) // swapped out in tests
}

// NewPaginator creates a Paginator with real delays.
func NewPaginator(client Client, retry RetryPolicy, pageDelay time.Duration) *Paginator {
	return &Paginator{
		Client:    client,
		Retry:     retry,
		PageDelay: pageDelay,
		Sleep:     time.Sleep,
	}
}

// FetchAllPlayers retrieves every player record for the campaign in
// increasing offset order. A failing offset is retried in place; once its
// retries are exhausted the fetch halts and returns what it accumulated,
// with partial=true. A page shorter than PageSize ends the data; an empty
// page ends it too, with a warning.
func (p *Paginator) FetchAllPlayers(campaignCode string) (records []model.RawPlayerRecord, partial bool) {
	skip := 0
	retries := 0
	for {
		page, err := p.Client.FetchPlayersPage(campaignCode, skip, PageSize)
		if err != nil {
			if retries < p.Retry.MaxRetries {
				retries++
				log.Printf("[WARN] fetch page skip=%d failed, retrying attempt %d/%d: %v",
					skip, retries, p.Retry.MaxRetries, err)
				p.Sleep(p.Retry.Delay)
				continue
			}
			log.Printf("[ERROR] fetch page skip=%d: reached maximum retry attempts: %v", skip, err)
			return records, true
		}
		retries = 0

		if len(page) == 0 {
			log.Printf("[WARN] no data fetched for current batch (skip=%d)", skip)
			return records, false
		}

		records = append(records, page...)
		if p.Progress != nil {
			p.Progress(len(records))
		}

		if len(page) < PageSize {
			return records, false
		}

		skip += PageSize
		p.Sleep(p.PageDelay)
	}
}
