package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures a single line text prompt.
type InputConfig struct {
	Message string
	Default string
	Help    string
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single or multi-select prompt. Options are the
// display labels; answers come back as indices into Options.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int   // -1 for no default
	Defaults     []int // multi-select only
	Help         string
	PageSize     int
}

// TextAreaConfig configures a multi-line text prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver abstracts the terminal library so prompt logic can be tested
// without a real terminal.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

// surveyDriver asks on the terminal. Prompts are drawn on out when it is a
// terminal file, otherwise on the process stdio.
type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

func newSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	d := &surveyDriver{out: out}
	if fw, ok := out.(terminal.FileWriter); ok {
		d.opts = append(d.opts, survey.WithStdio(os.Stdin, fw, os.Stderr))
	}
	return d
}

// ask runs one prompt, honouring ctx before the terminal blocks.
func (d *surveyDriver) ask(ctx context.Context, prompt survey.Prompt, response any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(prompt, response, d.opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var out string
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out)
	return out, err
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	var out string
	err := d.ask(ctx, &survey.Multiline{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out)
	return out, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var out bool
	err := d.ask(ctx, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out)
	return out, err
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	prompt := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	var label string
	if err := d.ask(ctx, prompt, &label); err != nil {
		return -1, err
	}
	picked := positions(cfg.Options, label)
	if len(picked) == 0 {
		return -1, fmt.Errorf("tui: unknown choice %q", label)
	}
	return picked[0], nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	prompt := &survey.MultiSelect{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	var defaults []string
	for _, idx := range cfg.Defaults {
		if idx >= 0 && idx < len(cfg.Options) {
			defaults = append(defaults, cfg.Options[idx])
		}
	}
	if len(defaults) > 0 {
		prompt.Default = defaults
	}
	var labels []string
	if err := d.ask(ctx, prompt, &labels); err != nil {
		return nil, err
	}
	return positions(cfg.Options, labels...), nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// positions returns the indices of labels within options, in option order.
func positions(options []string, labels ...string) []int {
	wanted := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		wanted[l] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := wanted[option]; ok {
			out = append(out, i)
		}
	}
	return out
}
