package ui

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// NewFileProgress returns a spinner-style counter for copies whose size is
// not known up front.
func NewFileProgress(out io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*1000000), // 65ms
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
