package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-pmsform/pkg/catalog"
	"github.com/goliatone/go-pmsform/pkg/render"
)

// PreviewName is the registry name of the plain text renderer.
const PreviewName = "text"

// Preview renders a section as plain text without prompting. It backs the
// "text" renderer used by the render command.
type Preview struct{}

var _ render.SectionRenderer = Preview{}

func (Preview) Name() string {
	return PreviewName
}

func (Preview) ContentType() string {
	return "text/plain; charset=utf-8"
}

// RenderSection writes the header, every question with its current answer,
// options and error, then the enabled navigation actions.
func (Preview) RenderSection(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	if view.FormTitle != "" {
		fmt.Fprintf(&b, "%s\n", view.FormTitle)
	}
	fmt.Fprintf(&b, "%s\n", progressLine(view.Progress))
	for _, step := range view.Steps {
		fmt.Fprintf(&b, "  %d. %s (%s)\n", step.Index+1, step.Title, step.Status)
	}
	for _, msg := range render.MergeFormErrors(opts.FormErrors) {
		fmt.Fprintf(&b, "! %s\n", msg)
	}

	fmt.Fprintf(&b, "\n== %s ==\n", view.Section.Title)
	if view.Section.Description != "" {
		fmt.Fprintf(&b, "%s\n", view.Section.Description)
	}

	errs := render.FieldErrors(view.Section, view.Errors)
	for _, q := range view.Section.Questions {
		b.WriteString("\n")
		writeQuestion(&b, q, view, errs[q.ID])
	}

	b.WriteString("\n")
	var actions []string
	if view.CanRetreat {
		actions = append(actions, MenuPrevious)
	}
	if view.IsLast {
		actions = append(actions, MenuSubmit)
	} else {
		actions = append(actions, MenuNext)
	}
	fmt.Fprintf(&b, "Actions: %s\n", strings.Join(actions, ", "))
	return []byte(b.String()), nil
}

func writeQuestion(b *strings.Builder, q catalog.Question, view render.View, message string) {
	required := ""
	if q.Required {
		required = " *"
	}
	fmt.Fprintf(b, "%s%s [%s]\n", q.Label, required, q.Type)

	value := view.Value(q.ID)
	if q.Type.HasOptions() {
		for _, opt := range q.Options {
			mark := " "
			if value.Contains(opt.Value) {
				mark = "x"
			}
			left, right := "(", ")"
			if q.Type.IsMulti() {
				left, right = "[", "]"
			}
			label := opt.Label
			if label == "" {
				label = opt.Value
			}
			fmt.Fprintf(b, "  %s%s%s %s\n", left, mark, right, label)
		}
	} else {
		text := value.String()
		if text == "" && q.Placeholder != "" {
			text = "(" + q.Placeholder + ")"
		}
		fmt.Fprintf(b, "  > %s\n", text)
	}
	if message != "" {
		fmt.Fprintf(b, "  ! %s\n", message)
	}
}
