package archiver

import (
	"context"
	"log"
	"sort"

	"slack-archiver/models"
)

// Fetcher retrieves all messages of a channel inside a time window,
// following continuation cursors until the API reports no more pages.
type Fetcher struct {
	api       API
	pageLimit int
}

// NewFetcher creates a message window fetcher. pageLimit bounds the
// page size requested from the API.
func NewFetcher(api API, pageLimit int) *Fetcher {
	return &Fetcher{api: api, pageLimit: pageLimit}
}

// Fetch returns every message of the channel whose timestamp falls in
// the window, in ascending timestamp order. A single page is never
// trusted to be complete: the cursor is followed to exhaustion. If a
// page fetch fails mid-sequence, the truncation is logged and the
// messages collected so far are returned, so sibling channels are
// unaffected.
func (f *Fetcher) Fetch(ctx context.Context, ch models.Channel, window Window) []models.RawMessage {
	var collected []models.RawMessage
	cursor := ""
	for {
		page, err := f.api.HistoryPage(ctx, HistoryRequest{
			ChannelID: ch.ID,
			Oldest:    window.Start,
			Latest:    window.End,
			Cursor:    cursor,
			Limit:     f.pageLimit,
		})
		if err != nil {
			log.Printf("Error fetching history for channel %s (%s), keeping %d messages collected so far: %v",
				ch.Name, ch.ID, len(collected), err)
			break
		}
		for _, msg := range page.Messages {
			// The API's range bounds are advisory; the window is the contract.
			if window.Contains(msg.Timestamp) {
				collected = append(collected, msg)
			}
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	// Pages arrive newest-first; downstream wants chronological order.
	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].Timestamp.Before(collected[j].Timestamp)
	})
	return collected
}
