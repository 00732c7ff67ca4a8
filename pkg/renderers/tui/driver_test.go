package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pmsform/pkg/controller"
	"github.com/goliatone/go-pmsform/pkg/submission"
	"github.com/goliatone/go-pmsform/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int

	lastInput  InputConfig
	lastSelect SelectConfig
	lastMulti  SelectConfig
	menus      [][]string

	confirmMessages []string
	infoErr         func(msg string) error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.lastInput = cfg
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirmMessages = append(s.confirmMessages, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.lastSelect = cfg
	if cfg.Message == "What next?" {
		s.menus = append(s.menus, cfg.Options)
	}
	if s.selectPos >= len(s.selectIdx) {
		return -1, fmt.Errorf("no select scripted for %q", cfg.Message)
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.lastMulti = cfg
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	if s.infoErr != nil {
		return s.infoErr(msg)
	}
	return nil
}

func TestSessionCollectsAnotherResponse(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "Grace"},
		textAreas: []string{"first", "second"},
		multiIdx:  [][]int{{0}, {1}},
		// Per response: menu Next, white label, menu Next, model, menu Submit.
		selectIdx: []int{0, 0, 0, 0, 2, 0, 1, 0, 1, 2},
		confirm:   []bool{true, false},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	gw := submission.NewMemoryGateway()
	c, err := controller.New(testsupport.SmallCatalog(), controller.WithGateway(gw))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}

	var seen []string
	n, err := NewSession(r).Collect(context.Background(), c, func(rec submission.StoredRecord) {
		seen = append(seen, rec.Record.SubmitterName)
	})
	if err != nil || n != 2 {
		t.Fatalf("collect = %d, %v", n, err)
	}
	if diff := cmp.Diff([]string{"Ada", "Grace"}, seen); diff != "" {
		t.Fatalf("stored callbacks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{AnotherPrompt, AnotherPrompt}, driver.confirmMessages); diff != "" {
		t.Fatalf("confirm prompts mismatch (-want +got):\n%s", diff)
	}

	records, err := gw.List(context.Background(), 0)
	if err != nil || len(records) != 2 {
		t.Fatalf("records = %v, %v", records, err)
	}
	byName := map[string]submission.Record{}
	for _, rec := range records {
		byName[rec.Record.SubmitterName] = rec.Record
	}
	if !byName["Ada"].WhiteLabeled || byName["Ada"].DeploymentModel != "cloud" {
		t.Fatalf("unexpected first record %+v", byName["Ada"])
	}
	if byName["Grace"].WhiteLabeled || byName["Grace"].DeploymentModel != "onprem" {
		t.Fatalf("unexpected second record %+v", byName["Grace"])
	}
	if got := c.State().Phase; got != controller.PhaseSubmitted {
		t.Fatalf("phase = %v, want submitted", got)
	}
}

func TestSessionCollectStopsOnQuit(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada"},
		textAreas: []string{""},
		selectIdx: []int{2},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	c, err := controller.New(testsupport.SmallCatalog())
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	n, err := NewSession(r).Collect(context.Background(), c, nil)
	if n != 0 || !errors.Is(err, ErrQuit) {
		t.Fatalf("collect = %d, %v", n, err)
	}
	if len(driver.confirmMessages) != 0 {
		t.Fatalf("confirm asked without a submission: %v", driver.confirmMessages)
	}
}
