package queue

import (
	"context"

	"github.com/mholtz/cabfetch/internal/models"
	"github.com/mholtz/cabfetch/internal/transfer"
	"github.com/sirupsen/logrus"
)

// Queue is the persisted download queue. Mutations persist the full queue
// immediately so the in-memory and on-disk views never drift.
type Queue struct {
	store *Store
	items []models.QueueItem
}

// Summary reports the outcome of one Process run
type Summary struct {
	Processed int
	Completed int
	Failed    int
}

// Open loads the queue from path, starting empty when the file is absent
func Open(path string) (*Queue, error) {
	store := NewStore(path)
	items, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Queue{store: store, items: items}, nil
}

// Add appends a pending item and persists the queue. The filename defaults to
// the last path segment of url; a URL without one degrades to an empty
// filename rather than an error.
func (q *Queue) Add(url, system, filename string) (models.QueueItem, error) {
	if filename == "" {
		filename = models.FilenameFromURL(url)
	}

	item := models.QueueItem{
		URL:      url,
		System:   system,
		Filename: filename,
		Status:   models.StatusPending,
	}

	q.items = append(q.items, item)
	if err := q.store.Save(q.items); err != nil {
		return models.QueueItem{}, err
	}

	logrus.Infof("Added to queue: %s", item.Filename)
	return item, nil
}

// Items returns the queue contents in storage order
func (q *Queue) Items() []models.QueueItem {
	out := make([]models.QueueItem, len(q.items))
	copy(out, q.items)
	return out
}

// Pending returns the number of items still waiting to be processed
func (q *Queue) Pending() int {
	n := 0
	for _, item := range q.items {
		if item.Status == models.StatusPending {
			n++
		}
	}
	return n
}

// ClearCompleted removes completed items and persists the result. Failed
// items are kept: they need user attention and are never dropped silently.
func (q *Queue) ClearCompleted() error {
	kept := q.items[:0]
	for _, item := range q.items {
		if item.Status != models.StatusCompleted {
			kept = append(kept, item)
		}
	}
	q.items = kept
	return q.store.Save(q.items)
}

// Process runs every pending item through strategy, strictly in queue order
// and one at a time. Each item's outcome is persisted before the next item
// starts, so an interrupted run leaves accurate partial progress on disk.
// A failed item never stops the run; only a persistence error does.
func (q *Queue) Process(ctx context.Context, strategy transfer.Strategy) (Summary, error) {
	var summary Summary

	for i := range q.items {
		if q.items[i].Status != models.StatusPending {
			continue
		}

		item := q.items[i]
		logrus.Infof("Processing: %s (%s)", item.Filename, strategy.Name())

		if err := strategy.Transfer(ctx, item); err != nil {
			logrus.Warnf("Transfer failed for %s: %v", item.Filename, err)
			q.items[i].Status = models.StatusFailed
			summary.Failed++
		} else {
			q.items[i].Status = models.StatusCompleted
			summary.Completed++
		}
		summary.Processed++

		if err := q.store.Save(q.items); err != nil {
			return summary, err
		}
	}

	return summary, nil
}
