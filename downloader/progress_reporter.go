package downloader

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// BarReporter implements ProgressReporter with a terminal progress bar
type BarReporter struct {
	bar   *progressbar.ProgressBar
	total int
	ticks int
}

// NewBarReporter creates a progress bar with one unit per (year, month) target
func NewBarReporter(total int, w io.Writer) *BarReporter {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Downloading"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)

	return &BarReporter{
		bar:   bar,
		total: total,
	}
}

// Tick implements the ProgressReporter interface
func (br *BarReporter) Tick() error {
	br.ticks++
	return br.bar.Add(1)
}

// Finish implements the ProgressReporter interface. A bar that did not reach
// its total is left at its current count.
func (br *BarReporter) Finish() error {
	if br.bar.IsFinished() {
		return nil
	}
	return br.bar.Exit()
}

// Ticks returns the number of ticks received
func (br *BarReporter) Ticks() int {
	return br.ticks
}

// NopReporter implements ProgressReporter without any output
type NopReporter struct{}

// Tick implements the ProgressReporter interface
func (NopReporter) Tick() error { return nil }

// Finish implements the ProgressReporter interface
func (NopReporter) Finish() error { return nil }
