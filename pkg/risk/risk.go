// Package risk screens candidate transactions against an ordered list of
// stateless rules before any balance is touched.
package risk

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/shopspring/decimal"
)

// Kind identifies a rule variant.
type Kind string

const (
	KindMaxAmount  Kind = "max_amount"
	KindVelocity   Kind = "velocity"
	KindDailyLimit Kind = "daily_limit"
)

// Kinds lists every supported rule in default evaluation order.
var Kinds = []Kind{KindMaxAmount, KindVelocity, KindDailyLimit}

// Reference parameters.
var (
	DefaultMaxAmount      = decimal.NewFromInt(1000)
	DefaultVelocityMax    = 5
	DefaultVelocityWindow = 10 * time.Minute
	DefaultDailyLimit     = decimal.NewFromInt(2000)
)

// ParseKind normalizes a rule name.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", domain.Validationf("unknown risk rule %q", name)
}

// Rule is a pure predicate over a candidate transaction, the account it
// draws on and that account's recent history. Only the fields relevant to
// Kind are read.
type Rule struct {
	Kind Kind `json:"kind"`
	// max_amount
	Threshold decimal.Decimal `json:"threshold,omitempty"`
	// velocity
	MaxCount int           `json:"max_count,omitempty"`
	Window   time.Duration `json:"window,omitempty"`
	// daily_limit
	DailyLimit decimal.Decimal `json:"daily_limit,omitempty"`
	Location   *time.Location  `json:"-"`
}

// MaxAmount fails candidates whose amount exceeds threshold.
func MaxAmount(threshold decimal.Decimal) Rule {
	return Rule{Kind: KindMaxAmount, Threshold: threshold}
}

// Velocity fails when maxCount or more transactions already happened inside
// the trailing window.
func Velocity(maxCount int, window time.Duration) Rule {
	return Rule{Kind: KindVelocity, MaxCount: maxCount, Window: window}
}

// DailyLimit fails when today's total plus the candidate exceeds limit.
// The day starts at local midnight in loc (UTC when nil).
func DailyLimit(limit decimal.Decimal, loc *time.Location) Rule {
	return Rule{Kind: KindDailyLimit, DailyLimit: limit, Location: loc}
}

// Defaults returns the rule of the given kind with reference parameters.
func Defaults(kind Kind) (Rule, error) {
	switch kind {
	case KindMaxAmount:
		return MaxAmount(DefaultMaxAmount), nil
	case KindVelocity:
		return Velocity(DefaultVelocityMax, DefaultVelocityWindow), nil
	case KindDailyLimit:
		return DailyLimit(DefaultDailyLimit, time.UTC), nil
	}
	return Rule{}, domain.Validationf("unknown risk rule %q", kind)
}

// ValidateParams checks the rule parameters.
func (r Rule) ValidateParams() error {
	switch r.Kind {
	case KindMaxAmount:
		if !r.Threshold.IsPositive() {
			return domain.Validationf("max amount threshold must be positive")
		}
	case KindVelocity:
		if r.MaxCount < 1 || r.Window <= 0 {
			return domain.Validationf("velocity needs a positive count and window")
		}
	case KindDailyLimit:
		if !r.DailyLimit.IsPositive() {
			return domain.Validationf("daily limit must be positive")
		}
	default:
		return domain.Validationf("unknown risk rule %q", r.Kind)
	}
	return nil
}

func (r Rule) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// StartOfDay returns local midnight of now in the rule's location.
func (r Rule) StartOfDay(now time.Time) time.Time {
	local := now.In(r.location())
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.location())
}

// Since returns the earliest creation instant of history the rule looks at.
// The boolean is false when the rule needs no history at all.
func (r Rule) Since(now time.Time) (time.Time, bool) {
	switch r.Kind {
	case KindVelocity:
		return now.Add(-r.Window), true
	case KindDailyLimit:
		return r.StartOfDay(now), true
	}
	return time.Time{}, false
}

// Validate evaluates the rule. History must not contain the candidate; any
// entry with the candidate's id is ignored.
func (r Rule) Validate(candidate *account.Transaction, acc *account.Account, history []*account.Transaction, now time.Time) (bool, string) {
	switch r.Kind {
	case KindMaxAmount:
		if candidate.Amount.GreaterThan(r.Threshold) {
			return false, fmt.Sprintf("amount %s exceeds the limit of %s", candidate.Amount, r.Threshold)
		}
	case KindVelocity:
		since := now.Add(-r.Window)
		count := 0
		for _, tx := range history {
			if tx.ID == candidate.ID || tx.CreatedAt.Before(since) {
				continue
			}
			count++
		}
		if count >= r.MaxCount {
			return false, fmt.Sprintf("too many transactions (%d) in the last %s", count, r.Window)
		}
	case KindDailyLimit:
		start := r.StartOfDay(now)
		total := candidate.Amount
		for _, tx := range history {
			if tx.ID == candidate.ID || tx.CreatedAt.Before(start) {
				continue
			}
			total = total.Add(tx.Amount)
		}
		if total.GreaterThan(r.DailyLimit) {
			return false, fmt.Sprintf("daily limit of %s exceeded (total: %s)", r.DailyLimit, total)
		}
	}
	return true, ""
}

func (r Rule) String() string {
	switch r.Kind {
	case KindMaxAmount:
		return fmt.Sprintf("max_amount(%s)", r.Threshold)
	case KindVelocity:
		return fmt.Sprintf("velocity(%d/%s)", r.MaxCount, r.Window)
	case KindDailyLimit:
		return fmt.Sprintf("daily_limit(%s %s)", r.DailyLimit, r.location())
	}
	return string(r.Kind)
}
