package catalog

// QuestionType is the declared input kind of a question.
type QuestionType string

const (
	QuestionTypeText        QuestionType = "text"
	QuestionTypeTextarea    QuestionType = "textarea"
	QuestionTypeSelect      QuestionType = "select"
	QuestionTypeRadio       QuestionType = "radio"
	QuestionTypeMultiSelect QuestionType = "multiselect"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeTextarea, QuestionTypeSelect, QuestionTypeRadio, QuestionTypeMultiSelect:
		return true
	default:
		return false
	}
}

// HasOptions reports whether answers for t are picked from a fixed option list.
func (t QuestionType) HasOptions() bool {
	switch t {
	case QuestionTypeSelect, QuestionTypeRadio, QuestionTypeMultiSelect:
		return true
	default:
		return false
	}
}

// IsMulti reports whether answers for t are sets of option values.
func (t QuestionType) IsMulti() bool {
	return t == QuestionTypeMultiSelect
}

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Question is a single prompt with a declared input type.
type Question struct {
	ID          string       `json:"id" yaml:"id"`
	Label       string       `json:"label" yaml:"label"`
	Type        QuestionType `json:"type" yaml:"type"`
	Options     []Option     `json:"options,omitempty" yaml:"options,omitempty"`
	Required    bool         `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder string       `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// OptionLabel returns the label for an option value, falling back to the
// value itself when the option is unknown or unlabeled.
func (q Question) OptionLabel(value string) string {
	for _, opt := range q.Options {
		if opt.Value == value {
			if opt.Label != "" {
				return opt.Label
			}
			return opt.Value
		}
	}
	return value
}

// HasOption reports whether value is one of the question's option values.
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Section is a named group of questions shown together as one step.
type Section struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions"`
}

// Derivation names the questions that feed the denormalized submission
// fields. Each list is tried in order and the first answered question wins.
// A nil Derivation on a catalog means the submission defaults apply.
type Derivation struct {
	SubmitterName        []string `json:"submitter_name,omitempty" yaml:"submitter_name,omitempty"`
	TargetTimeline       []string `json:"target_timeline,omitempty" yaml:"target_timeline,omitempty"`
	DeploymentModel      []string `json:"deployment_model,omitempty" yaml:"deployment_model,omitempty"`
	MultiPropertySupport []string `json:"multi_property_support,omitempty" yaml:"multi_property_support,omitempty"`
	WhiteLabeled         []string `json:"white_labeled,omitempty" yaml:"white_labeled,omitempty"`
	Sentinel             string   `json:"sentinel,omitempty" yaml:"sentinel,omitempty"`
}

// Catalog is the ordered list of sections that make up the questionnaire.
type Catalog struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Sections    []Section   `json:"sections" yaml:"sections"`
	Derived     *Derivation `json:"derived,omitempty" yaml:"derived,omitempty"`
}
