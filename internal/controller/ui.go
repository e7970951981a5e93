// Package controller provides output adapters for displaying layermap reports.
package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "layermap.dev/pkg/layermap/internal/model"
)

// Format selects how a report is written.
type Format string

// Available output formats.
const (
	// FormatAuto pages text through the TUI on a terminal and prints it otherwise.
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatTUI  Format = "tui"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for an output format layermap cannot write.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the accepted format names.
func Formats() []Format {
	return []Format{FormatAuto, FormatText, FormatTUI, FormatJSON, FormatYAML}
}

// ParseFormat parses a format name case-insensitively. An empty name is auto.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatAuto, nil
	}

	for _, format := range Formats() {
		if string(format) == name {
			return format, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// DisplayOption is a functional option for DisplayReport.
type DisplayOption func(*DisplayConfig)

// DisplayConfig holds the options of one DisplayReport call.
type DisplayConfig struct {
	format Format
}

// WithFormat sets the output format.
func WithFormat(format Format) DisplayOption {
	return func(c *DisplayConfig) {
		c.format = format
	}
}

// Format returns the selected output format.
func (c DisplayConfig) Format() Format {
	return c.format
}

// UI defines the interface for presenting a finished report.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayReport(ctx context.Context, report m.Report, options ...DisplayOption) error
}

type ui struct {
	cmd   *cobra.Command
	isTTY bool
}

// NewUI creates the UI writing to cmd's output. isTTY enables paging in
// auto mode.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	return &ui{cmd: cmd, isTTY: isTTY}
}

func (u *ui) DisplayReport(ctx context.Context, report m.Report, options ...DisplayOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := DisplayConfig{format: FormatAuto}
	for _, option := range options {
		option(&config)
	}

	out := u.cmd.OutOrStdout()

	switch config.format {
	case FormatJSON:
		return m.EncodeJSON(out, report)
	case FormatYAML:
		return m.EncodeYAML(out, report)
	case FormatText:
		return NewSimpleUI(u.cmd).DisplayReport(ctx, report)
	case FormatTUI:
		return NewTUI(out).DisplayText(RenderText(report))
	case FormatAuto, "":
		if u.isTTY {
			return NewTUI(out).DisplayText(RenderText(report))
		}

		return NewSimpleUI(u.cmd).DisplayReport(ctx, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, config.format)
	}
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
