package controller

import (
	"math"

	"github.com/goliatone/go-pmsform/pkg/catalog"
)

// Progress describes how far through the catalog the respondent is.
type Progress struct {
	Current int // 1-based section number
	Total   int
	Percent int
}

// StepStatus is the state of one entry in the step indicator.
type StepStatus string

const (
	StepCurrent  StepStatus = "current"
	StepComplete StepStatus = "complete"
	StepUpcoming StepStatus = "upcoming"
)

// Step is one entry of the step indicator.
type Step struct {
	Index     int
	SectionID string
	Title     string
	Status    StepStatus
}

// ProgressOf computes progress for index within total sections.
func ProgressOf(index, total int) Progress {
	if total <= 0 {
		return Progress{}
	}
	current := index + 1
	return Progress{
		Current: current,
		Total:   total,
		Percent: int(math.Round(float64(current) / float64(total) * 100)),
	}
}

// Progress reports the position of the current section.
func (c *Controller) Progress() Progress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ProgressOf(c.state.Index, c.reducer.Catalog.Len())
}

// Steps returns the step indicator entries for the current position.
func (c *Controller) Steps() []Step {
	c.mu.Lock()
	idx := c.state.Index
	c.mu.Unlock()
	return StepsOf(c.reducer.Catalog, idx)
}

// StepsOf builds step indicator entries for cat with index as the current
// section. Sections before it are reported complete; navigation is never
// blocked by their status.
func StepsOf(cat catalog.Catalog, index int) []Step {
	steps := make([]Step, len(cat.Sections))
	for i, section := range cat.Sections {
		status := StepUpcoming
		switch {
		case i == index:
			status = StepCurrent
		case i < index:
			status = StepComplete
		}
		steps[i] = Step{Index: i, SectionID: section.ID, Title: section.Title, Status: status}
	}
	return steps
}

// IsLast reports whether the current section is the final one.
func (c *Controller) IsLast() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Index == c.reducer.Catalog.LastIndex()
}

// CanRetreat reports whether the Previous control is enabled.
func (c *Controller) CanRetreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase == PhaseViewing && c.state.Index > 0
}

// CanSubmit reports whether the Submit control is enabled.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase == PhaseViewing && c.state.Index == c.reducer.Catalog.LastIndex()
}
