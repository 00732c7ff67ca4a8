package render

import (
	"context"
)

// SectionRenderer turns one section of the questionnaire into bytes (HTML
// markup, plain text, ...).
type SectionRenderer interface {
	Name() string
	ContentType() string
	RenderSection(ctx context.Context, view View, options RenderOptions) ([]byte, error)
}
