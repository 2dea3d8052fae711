package models

import (
	"net/url"
	"strings"
)

// Status represents the lifecycle state of a queue item
type Status string

const (
	// StatusPending means the item has been queued but not processed
	StatusPending Status = "pending"

	// StatusCompleted means the transfer finished successfully
	StatusCompleted Status = "completed"

	// StatusFailed means the transfer was attempted and failed
	StatusFailed Status = "failed"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsFinished returns true if the item has been processed, successfully or not
func (s Status) IsFinished() bool {
	return s == StatusCompleted || s == StatusFailed
}

// QueueItem represents one requested transfer in the download queue.
// The field names are the on-disk storage contract.
type QueueItem struct {
	URL      string `json:"url"`
	System   string `json:"system"`
	Filename string `json:"filename"`
	Status   Status `json:"status"`
}

// RemotePath returns the destination path of the item under basePath
func (q QueueItem) RemotePath(basePath string) string {
	return basePath + "/" + q.System + "/" + q.Filename
}

// FilenameFromURL derives a file name from the final path segment of rawURL.
// A URL without a usable path segment yields an empty string, not an error.
func FilenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := u.Path
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// ProgressFunc receives transfer progress events: the file being transferred,
// its total size in bytes (0 if unknown) and the bytes moved so far.
// Implementations must not assume they are called from any particular
// goroutine; transfers never fail because of a progress callback.
type ProgressFunc func(name string, total, sent int64)
