package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// DefaultPolicy allows the inline markup catalog authors use in labels and
// descriptions (emphasis, code, line breaks, links) and strips the rest.
func DefaultPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "em", "i", "code", "br", "small")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		textPolicy = policy
	})
	return textPolicy
}

func sanitize(policy *bluemonday.Policy, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(policy.Sanitize(trimmed))
}
