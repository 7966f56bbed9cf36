package agent

import "strings"

// Intent classifies a user query and determines the pipeline branch.
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentPolicy   Intent = "policy"
)

// questionIndicators are substrings that mark a query as an informational
// question about the loan programme, regardless of its shape.
var questionIndicators = []string{
	"what", "how", "when", "where", "who", "why", "which", "tell me", "explain",
	"eligibility", "application", "repayment", "loan", "nelfund", "require",
	"criteria", "process", "step", "document", "qualify", "apply", "info", "know",
}

// greetingPhrases is the closed set of inputs treated as a greeting.
// Greeting detection is deliberately conservative: only an exact, short,
// non-question, keyword-free phrase skips retrieval.
var greetingPhrases = map[string]bool{
	"hello":        true,
	"hi":           true,
	"hey":          true,
	"good morning": true,
	"good evening": true,
	"hey there":    true,
	"hi there":     true,
}

// ClassifyIntent maps a raw query to an Intent. It is pure and deterministic;
// empty and garbage input falls through to IntentPolicy so the caller reaches
// the "no information" answer path instead of a bare greeting.
func ClassifyIntent(query string) Intent {
	q := strings.TrimSpace(query)
	if q == "" {
		return IntentPolicy
	}

	// Anything that looks like a question always consults the knowledge base.
	if strings.Contains(q, "?") {
		return IntentPolicy
	}
	if len(strings.Fields(q)) > 2 {
		return IntentPolicy
	}

	lower := strings.ToLower(q)
	for _, ind := range questionIndicators {
		if strings.Contains(lower, ind) {
			return IntentPolicy
		}
	}

	if greetingPhrases[lower] {
		return IntentGreeting
	}

	return IntentPolicy
}
