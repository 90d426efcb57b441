package risk

import (
	"time"

	"github.com/amirasaad/corebank/pkg/domain/account"
)

// Decision is the outcome of a pipeline run.
type Decision struct {
	Passed bool
	Rule   Kind
	Reason string
}

// Pipeline evaluates rules in order and stops at the first failure.
type Pipeline struct {
	rules []Rule
}

// NewPipeline returns a pipeline over a copy of rules.
func NewPipeline(rules ...Rule) Pipeline {
	return Pipeline{rules: append([]Rule(nil), rules...)}
}

// Rules returns the configured rules in evaluation order.
func (p Pipeline) Rules() []Rule {
	return append([]Rule(nil), p.rules...)
}

// Since returns the earliest instant any rule needs history from. The
// boolean is false when no rule reads history.
func (p Pipeline) Since(now time.Time) (time.Time, bool) {
	var (
		earliest time.Time
		needed   bool
	)
	for _, r := range p.rules {
		since, ok := r.Since(now)
		if !ok {
			continue
		}
		if !needed || since.Before(earliest) {
			earliest = since
			needed = true
		}
	}
	return earliest, needed
}

// Evaluate runs every rule against candidate until one fails.
func (p Pipeline) Evaluate(candidate *account.Transaction, acc *account.Account, history []*account.Transaction, now time.Time) Decision {
	for _, r := range p.rules {
		if ok, reason := r.Validate(candidate, acc, history, now); !ok {
			return Decision{Passed: false, Rule: r.Kind, Reason: reason}
		}
	}
	return Decision{Passed: true}
}
