package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progress wraps an optional terminal progress bar. The zero value and a
// nil pointer discard updates.
type progress struct {
	bar *progressbar.ProgressBar
}

// newProgress returns a bar on w when w is a terminal and total is known.
func newProgress(w io.Writer, total int64, description string) *progress {
	if total <= 0 || !isTerminal(w) {
		return &progress{}
	}
	return &progress{bar: newBar(w, total, description, false)}
}

// newByteProgress is newProgress rendering byte counts.
func newByteProgress(w io.Writer, total int64, description string) *progress {
	if !isTerminal(w) {
		return &progress{}
	}
	return &progress{bar: newBar(w, total, description, true)}
}

func newBar(w io.Writer, total int64, description string, bytes bool) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(80 * time.Millisecond),
		progressbar.OptionClearOnFinish(),
	}
	if bytes {
		opts = append(opts, progressbar.OptionShowBytes(true))
	} else {
		opts = append(opts, progressbar.OptionShowCount())
	}
	return progressbar.NewOptions64(total, opts...)
}

func (p *progress) add(n int) {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Add(n)
}

func (p *progress) set(n int64) {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Set64(n)
}

func (p *progress) describe(description string) {
	if p == nil || p.bar == nil {
		return
	}
	p.bar.Describe(description)
}

func (p *progress) finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
