package cli

import (
	"github.com/mholtz/cabfetch/internal/models"
	"github.com/schollz/progressbar/v3"
)

// newProgressBar returns a ProgressFunc that renders transfer progress on the
// terminal. A new bar starts whenever the file name changes, so one callback
// covers both the staging download and the SCP push of an item.
func newProgressBar() models.ProgressFunc {
	var bar *progressbar.ProgressBar
	var current string

	return func(name string, total, sent int64) {
		if bar == nil || current != name {
			if total <= 0 {
				total = -1
			}
			bar = progressbar.DefaultBytes(total, name)
			current = name
		}
		_ = bar.Set64(sent)
	}
}
