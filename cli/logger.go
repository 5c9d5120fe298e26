package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to w at the given level. An empty level
// means info.
func NewLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "spectree",
		Level:           lvl,
		ReportTimestamp: true,
	}), nil
}
