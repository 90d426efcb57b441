// Package fee computes the surcharge retained on deposits, withdrawals and
// transfers. A Policy is a closed set of variants selected by name.
package fee

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/shopspring/decimal"
)

// Kind identifies a fee policy variant.
type Kind string

const (
	KindNone    Kind = "no"
	KindFlat    Kind = "flat"
	KindPercent Kind = "percent"
	KindTiered  Kind = "tiered"
)

// Kinds lists every supported policy name.
var Kinds = []Kind{KindNone, KindFlat, KindPercent, KindTiered}

// Tier applies Rate to amounts greater than or equal to From.
type Tier struct {
	From decimal.Decimal `json:"from"`
	Rate decimal.Decimal `json:"rate"`
}

// Policy is a pure fee function. The zero value charges nothing.
type Policy struct {
	Kind  Kind            `json:"kind"`
	Flat  decimal.Decimal `json:"flat,omitempty"`
	Rate  decimal.Decimal `json:"rate,omitempty"`
	Tiers []Tier          `json:"tiers,omitempty"`
}

var (
	defaultFlat  = decimal.RequireFromString("0.50")
	defaultRate  = decimal.RequireFromString("0.015")
	defaultTiers = []Tier{
		{From: decimal.Zero, Rate: decimal.RequireFromString("0.01")},
		{From: decimal.NewFromInt(100), Rate: decimal.RequireFromString("0.02")},
	}
)

// None charges nothing.
func None() Policy { return Policy{Kind: KindNone} }

// Flat charges a fixed amount regardless of the operation amount.
func Flat(amount decimal.Decimal) Policy { return Policy{Kind: KindFlat, Flat: amount} }

// Percent charges amount × rate.
func Percent(rate decimal.Decimal) Policy { return Policy{Kind: KindPercent, Rate: rate} }

// Tiered charges amount × the rate of the highest tier whose From does not exceed amount.
func Tiered(tiers ...Tier) Policy {
	sorted := append([]Tier(nil), tiers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From.LessThan(sorted[j].From) })
	return Policy{Kind: KindTiered, Tiers: sorted}
}

// Defaults returns the reference parameters for each policy kind.
func Defaults(kind Kind) (Policy, error) {
	switch kind {
	case KindNone, "":
		return None(), nil
	case KindFlat:
		return Flat(defaultFlat), nil
	case KindPercent:
		return Percent(defaultRate), nil
	case KindTiered:
		return Tiered(defaultTiers...), nil
	}
	return Policy{}, domain.Validationf("unknown fee policy %q", kind)
}

// ParseKind normalizes a policy name.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", domain.Validationf("unknown fee policy %q", name)
}

// Validate checks the policy parameters.
func (p Policy) Validate() error {
	switch p.Kind {
	case KindNone, "":
		return nil
	case KindFlat:
		if p.Flat.IsNegative() {
			return domain.Validationf("flat fee cannot be negative")
		}
	case KindPercent:
		if p.Rate.IsNegative() {
			return domain.Validationf("fee rate cannot be negative")
		}
	case KindTiered:
		if len(p.Tiers) == 0 {
			return domain.Validationf("tiered fee needs at least one tier")
		}
		for _, t := range p.Tiers {
			if t.Rate.IsNegative() || t.From.IsNegative() {
				return domain.Validationf("tier %s has a negative bound or rate", t.From)
			}
		}
	default:
		return domain.Validationf("unknown fee policy %q", p.Kind)
	}
	return nil
}

// Calculate returns the fee for amount. The result is never negative.
func (p Policy) Calculate(amount decimal.Decimal) decimal.Decimal {
	var fee decimal.Decimal
	switch p.Kind {
	case KindFlat:
		fee = p.Flat
	case KindPercent:
		fee = amount.Mul(p.Rate)
	case KindTiered:
		rate := decimal.Zero
		for _, t := range p.Tiers {
			if amount.GreaterThanOrEqual(t.From) {
				rate = t.Rate
			}
		}
		fee = amount.Mul(rate)
	default:
		return decimal.Zero
	}
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}

func (p Policy) String() string {
	switch p.Kind {
	case KindFlat:
		return fmt.Sprintf("flat(%s)", p.Flat)
	case KindPercent:
		return fmt.Sprintf("percent(%s)", p.Rate)
	case KindTiered:
		parts := make([]string, 0, len(p.Tiers))
		for _, t := range p.Tiers {
			parts = append(parts, fmt.Sprintf(">=%s:%s", t.From, t.Rate))
		}
		return "tiered(" + strings.Join(parts, ",") + ")"
	}
	return "no"
}
