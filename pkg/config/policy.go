package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/amirasaad/corebank/pkg/fee"
	"github.com/amirasaad/corebank/pkg/risk"
	"github.com/shopspring/decimal"
)

// Tiers decodes "from:rate,from:rate" into fee tiers.
type Tiers []fee.Tier

// Decode implements envconfig.Decoder.
func (t *Tiers) Decode(value string) error {
	var out Tiers
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, rate, ok := strings.Cut(part, ":")
		if !ok {
			return fmt.Errorf("invalid fee tier %q, want from:rate", part)
		}
		f, err := decimal.NewFromString(strings.TrimSpace(from))
		if err != nil {
			return fmt.Errorf("invalid fee tier bound %q: %w", from, err)
		}
		r, err := decimal.NewFromString(strings.TrimSpace(rate))
		if err != nil {
			return fmt.Errorf("invalid fee tier rate %q: %w", rate, err)
		}
		out = append(out, fee.Tier{From: f, Rate: r})
	}
	*t = out
	return nil
}

// FeePolicy builds the configured fee policy.
func (c *Fee) FeePolicy() (fee.Policy, error) {
	kind, err := fee.ParseKind(c.Policy)
	if err != nil {
		return fee.Policy{}, err
	}
	var p fee.Policy
	switch kind {
	case fee.KindFlat:
		p = fee.Flat(c.Flat)
	case fee.KindPercent:
		p = fee.Percent(c.Rate)
	case fee.KindTiered:
		p = fee.Tiered(c.Tiers...)
	default:
		p = fee.None()
	}
	return p, p.Validate()
}

// Location resolves the configured time zone.
func (c *Risk) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid RISK_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Catalog returns every known rule with its configured parameters, in
// evaluation order.
func (c *Risk) Catalog() ([]risk.Rule, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	rules := []risk.Rule{
		risk.MaxAmount(c.MaxAmount),
		risk.Velocity(c.VelocityMax, c.VelocityWindow),
		risk.DailyLimit(c.DailyLimit, loc),
	}
	for _, r := range rules {
		if err := r.ValidateParams(); err != nil {
			return nil, err
		}
	}
	return rules, nil
}

// Enabled returns the kinds listed in RISK_RULES.
func (c *Risk) Enabled() ([]risk.Kind, error) {
	kinds := make([]risk.Kind, 0, len(c.Rules))
	for _, name := range c.Rules {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, err := risk.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
