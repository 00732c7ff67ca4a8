package html

// CSS classes emitted by the default templates.
const (
	ClassForm     = "pmsform"
	ClassHeader   = "pmsform-header"
	ClassSteps    = "pmsform-steps"
	ClassSection  = "pmsform-section"
	ClassQuestion = "pmsform-question"
	ClassRequired = "pmsform-required"
	ClassError    = "pmsform-error"
	ClassNotice   = "pmsform-notice"
	ClassActions  = "pmsform-actions"
)

func classContext() map[string]any {
	return map[string]any{
		"form":     ClassForm,
		"header":   ClassHeader,
		"steps":    ClassSteps,
		"section":  ClassSection,
		"question": ClassQuestion,
		"required": ClassRequired,
		"error":    ClassError,
		"notice":   ClassNotice,
		"actions":  ClassActions,
	}
}
