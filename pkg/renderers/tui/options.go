package tui

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the lipgloss styles used for the section header.
type Theme struct {
	Title        lipgloss.Style
	Progress     lipgloss.Style
	StepCurrent  lipgloss.Style
	StepComplete lipgloss.Style
	StepUpcoming lipgloss.Style
	Error        lipgloss.Style
	Required     string
}

// DefaultTheme returns the built-in styles.
func DefaultTheme() Theme {
	return Theme{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Progress:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StepCurrent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		StepComplete: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		StepUpcoming: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Required:     " *",
	}
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where headers and messages are written when the default
// survey driver is used.
func WithOutput(out io.Writer) Option {
	return func(r *Renderer) {
		if out != nil {
			r.out = out
		}
	}
}

// WithTheme replaces the header styles.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
