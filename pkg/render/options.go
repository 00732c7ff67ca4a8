package render

// RenderOptions carry per-request data that is not part of the form state.
type RenderOptions struct {
	// Action is the URL the rendered form posts to. Markup renderers default
	// to an empty action (post back to the current URL).
	Action string
	// Hidden fields are emitted as hidden inputs, sorted by name.
	Hidden map[string]string
	// FormErrors are shown above the section, for example a failed
	// submission message.
	FormErrors []string
	// Notices are informational messages, such as a submission receipt.
	Notices []string
}
