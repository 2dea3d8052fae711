package remote

import (
	"io"

	"github.com/mholtz/cabfetch/internal/models"
)

// progressReader wraps the SCP payload reader and emits a progress event per
// read
type progressReader struct {
	reader   io.Reader
	name     string
	total    int64
	sent     int64
	progress models.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.progress != nil {
			p.progress(p.name, p.total, p.sent)
		}
	}
	return n, err
}
