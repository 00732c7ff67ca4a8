package submission

import (
	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
)

// DefaultSentinel is the answer value that turns a derived flag on.
const DefaultSentinel = "yes"

// Derivation maps record summary fields to the questions they are read from.
// Each field lists candidate question ids; the first one with a non-empty
// answer wins.
type Derivation struct {
	SubmitterName        []string
	TargetTimeline       []string
	DeploymentModel      []string
	MultiPropertySupport []string
	WhiteLabeled         []string
	Sentinel             string
}

// DefaultDerivation reads the summary fields from their canonical question
// ids, with the submitter name falling back to contact_name.
func DefaultDerivation() Derivation {
	return Derivation{
		SubmitterName:        []string{"submitter_name", "contact_name"},
		TargetTimeline:       []string{"target_timeline"},
		DeploymentModel:      []string{"deployment_model"},
		MultiPropertySupport: []string{"multi_property_support"},
		WhiteLabeled:         []string{"white_labeled"},
		Sentinel:             DefaultSentinel,
	}
}

// DerivationFor returns the derivation declared by the catalog, with any
// field it leaves out taken from DefaultDerivation.
func DerivationFor(cat catalog.Catalog) Derivation {
	d := DefaultDerivation()
	if cat.Derived == nil {
		return d
	}
	src := cat.Derived
	if len(src.SubmitterName) > 0 {
		d.SubmitterName = append([]string(nil), src.SubmitterName...)
	}
	if len(src.TargetTimeline) > 0 {
		d.TargetTimeline = append([]string(nil), src.TargetTimeline...)
	}
	if len(src.DeploymentModel) > 0 {
		d.DeploymentModel = append([]string(nil), src.DeploymentModel...)
	}
	if len(src.MultiPropertySupport) > 0 {
		d.MultiPropertySupport = append([]string(nil), src.MultiPropertySupport...)
	}
	if len(src.WhiteLabeled) > 0 {
		d.WhiteLabeled = append([]string(nil), src.WhiteLabeled...)
	}
	if src.Sentinel != "" {
		d.Sentinel = src.Sentinel
	}
	return d
}

// Build assembles the record for values: the full answer map plus the
// derived summary fields. Missing source questions yield "" or false.
func (d Derivation) Build(values answers.Map) Record {
	data := values.Clone()
	if data == nil {
		data = answers.Map{}
	}
	return Record{
		FormData:             data,
		SubmitterName:        d.text(values, d.SubmitterName),
		TargetTimeline:       d.text(values, d.TargetTimeline),
		DeploymentModel:      d.text(values, d.DeploymentModel),
		MultiPropertySupport: d.flag(values, d.MultiPropertySupport),
		WhiteLabeled:         d.flag(values, d.WhiteLabeled),
	}
}

func (d Derivation) text(values answers.Map, ids []string) string {
	for _, id := range ids {
		v, ok := values.Get(id)
		if !ok || v.IsEmpty() {
			continue
		}
		return v.Text(", ")
	}
	return ""
}

// flag is true when the first present source question either equals the
// sentinel (scalar) or contains it (set).
func (d Derivation) flag(values answers.Map, ids []string) bool {
	sentinel := d.Sentinel
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	for _, id := range ids {
		v, ok := values.Get(id)
		if !ok || v.IsEmpty() {
			continue
		}
		return v.Contains(sentinel)
	}
	return false
}
