package template

// TemplateRenderer executes a named template against data and returns the
// output.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
}
