// Package settings holds the runtime-mutable fee policy and risk rule
// selection. Orchestration takes a Snapshot per operation so a concurrent
// change never affects an operation already in flight.
package settings

import (
	"log/slog"
	"sync"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/fee"
	"github.com/amirasaad/corebank/pkg/risk"
	"github.com/shopspring/decimal"
)

// Snapshot is an immutable view of the active configuration.
type Snapshot struct {
	Fee      fee.Policy
	Pipeline risk.Pipeline
}

// RuleState describes one catalog rule and whether it is enabled.
type RuleState struct {
	Rule    risk.Rule `json:"rule"`
	Enabled bool      `json:"enabled"`
}

// FeeParams overrides the reference parameters of a fee policy. Nil or
// empty fields fall back to the defaults for the selected kind.
type FeeParams struct {
	Flat  *decimal.Decimal
	Rate  *decimal.Decimal
	Tiers []fee.Tier
}

// Service is safe for concurrent use.
type Service struct {
	mu      sync.RWMutex
	policy  fee.Policy
	catalog []risk.Rule
	enabled map[risk.Kind]bool
	logger  *slog.Logger
}

// New creates a Service. catalog fixes the evaluation order and the
// parameters of every known rule; enabled selects which of them run.
func New(policy fee.Policy, catalog []risk.Rule, enabled []risk.Kind, logger *slog.Logger) (*Service, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		policy:  policy,
		catalog: completeCatalog(catalog),
		enabled: make(map[risk.Kind]bool),
		logger:  logger.With("service", "settings"),
	}
	for _, k := range enabled {
		kind, err := risk.ParseKind(string(k))
		if err != nil {
			return nil, err
		}
		s.enabled[kind] = true
	}
	return s, nil
}

// NewService builds the settings service from the loaded configuration.
// Without configuration the service starts with no fee and every rule
// enabled at its reference parameters.
func NewService(deps config.Deps) (*Service, error) {
	if deps.Config == nil || deps.Config.Fee == nil || deps.Config.Risk == nil {
		return New(fee.None(), nil, risk.Kinds, deps.Logger)
	}
	policy, err := deps.Config.Fee.FeePolicy()
	if err != nil {
		return nil, err
	}
	catalog, err := deps.Config.Risk.Catalog()
	if err != nil {
		return nil, err
	}
	enabled, err := deps.Config.Risk.Enabled()
	if err != nil {
		return nil, err
	}
	return New(policy, catalog, enabled, deps.Logger)
}

// completeCatalog orders rules by risk.Kinds and fills missing kinds with
// their defaults.
func completeCatalog(rules []risk.Rule) []risk.Rule {
	byKind := make(map[risk.Kind]risk.Rule, len(rules))
	for _, r := range rules {
		byKind[r.Kind] = r
	}
	out := make([]risk.Rule, 0, len(risk.Kinds))
	for _, k := range risk.Kinds {
		r, ok := byKind[k]
		if !ok {
			r, _ = risk.Defaults(k)
		}
		out = append(out, r)
	}
	return out
}

// Snapshot returns the fee policy and the pipeline of enabled rules.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rules := make([]risk.Rule, 0, len(s.catalog))
	for _, r := range s.catalog {
		if s.enabled[r.Kind] {
			rules = append(rules, r)
		}
	}
	return Snapshot{Fee: s.policy, Pipeline: risk.NewPipeline(rules...)}
}

// FeePolicy returns the active fee policy.
func (s *Service) FeePolicy() fee.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// Rules lists every catalog rule with its enabled flag.
func (s *Service) Rules() []RuleState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]RuleState, 0, len(s.catalog))
	for _, r := range s.catalog {
		out = append(out, RuleState{Rule: r, Enabled: s.enabled[r.Kind]})
	}
	return out
}

// SetFeePolicy selects the active fee policy by name.
func (s *Service) SetFeePolicy(name string, params FeeParams) (fee.Policy, error) {
	kind, err := fee.ParseKind(name)
	if err != nil {
		return fee.Policy{}, err
	}
	policy, err := fee.Defaults(kind)
	if err != nil {
		return fee.Policy{}, err
	}
	switch kind {
	case fee.KindFlat:
		if params.Flat != nil {
			policy = fee.Flat(*params.Flat)
		}
	case fee.KindPercent:
		if params.Rate != nil {
			policy = fee.Percent(*params.Rate)
		}
	case fee.KindTiered:
		if len(params.Tiers) > 0 {
			policy = fee.Tiered(params.Tiers...)
		}
	}
	if err := policy.Validate(); err != nil {
		return fee.Policy{}, err
	}

	s.mu.Lock()
	s.policy = policy
	s.mu.Unlock()
	s.logger.Info("fee policy changed", "policy", policy.String())
	return policy, nil
}

// SetRuleEnabled turns a rule on or off by name.
func (s *Service) SetRuleEnabled(name string, enabled bool) error {
	kind, err := risk.ParseKind(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.enabled[kind] = enabled
	s.mu.Unlock()
	s.logger.Info("risk rule toggled", "rule", kind, "enabled", enabled)
	return nil
}

// UpdateRule replaces the parameters of a catalog rule without changing
// whether it is enabled.
func (s *Service) UpdateRule(rule risk.Rule) error {
	if err := rule.ValidateParams(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.catalog {
		if s.catalog[i].Kind == rule.Kind {
			if rule.Kind == risk.KindDailyLimit && rule.Location == nil {
				rule.Location = s.catalog[i].Location
			}
			s.catalog[i] = rule
			s.logger.Info("risk rule updated", "rule", rule.String())
			return nil
		}
	}
	return nil
}
