package renderer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Progress counts completed scanlines. It is safe to read while workers update it.
type Progress struct {
	completed atomic.Int64
	total     int
}

// NewProgress creates a counter for an image with total scanlines
func NewProgress(total int) *Progress {
	return &Progress{total: total}
}

// Increment records one more finished scanline
func (p *Progress) Increment() {
	p.completed.Add(1)
}

// Completed returns the number of finished scanlines
func (p *Progress) Completed() int {
	return int(p.completed.Load())
}

// Total returns the number of scanlines in the image
func (p *Progress) Total() int {
	return p.total
}

// Done reports whether every scanline has been finished
func (p *Progress) Done() bool {
	return p.Completed() >= p.total
}

// WatchProgress logs the scanline count every interval until ctx is cancelled
// or the render completes. It only reads the counter.
func WatchProgress(ctx context.Context, progress *Progress, interval time.Duration, logger core.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			completed := progress.Completed()
			if completed != last {
				logger.Printf("\rScanlines completed: %d/%d", completed, progress.Total())
				last = completed
			}
			if completed >= progress.Total() {
				logger.Printf("\n")
				return
			}
		}
	}
}
