package settings

import (
	"time"

	"github.com/amirasaad/corebank/pkg/fee"
	"github.com/amirasaad/corebank/pkg/risk"
	settingssvc "github.com/amirasaad/corebank/pkg/service/settings"
	"github.com/shopspring/decimal"
)

//revive:disable

// TierDTO is one band of a tiered fee policy.
type TierDTO struct {
	From decimal.Decimal `json:"from" swaggertype:"string" validate:"numeric"`
	Rate decimal.Decimal `json:"rate" swaggertype:"string" validate:"numeric"`
}

// FeeRequest selects the active fee policy. Omitted parameters fall back to
// the policy's reference values.
type FeeRequest struct {
	Policy string           `json:"policy" example:"percent" validate:"required,oneof=no flat percent tiered"`
	Flat   *decimal.Decimal `json:"flat,omitempty" swaggertype:"string"`
	Rate   *decimal.Decimal `json:"rate,omitempty" swaggertype:"string"`
	Tiers  []TierDTO        `json:"tiers,omitempty" validate:"omitempty,dive"`
}

// RuleRequest toggles a risk rule and optionally replaces its parameters.
type RuleRequest struct {
	Enabled    *bool            `json:"enabled" validate:"required"`
	Threshold  *decimal.Decimal `json:"threshold,omitempty" swaggertype:"string"`
	MaxCount   *int             `json:"max_count,omitempty" validate:"omitempty,gt=0"`
	Window     string           `json:"window,omitempty" example:"10m"`
	DailyLimit *decimal.Decimal `json:"daily_limit,omitempty" swaggertype:"string"`
	Timezone   string           `json:"timezone,omitempty" example:"Europe/Berlin"`
}

// FeeDTO describes the active fee policy.
type FeeDTO struct {
	Policy string    `json:"policy"`
	Flat   string    `json:"flat,omitempty"`
	Rate   string    `json:"rate,omitempty"`
	Tiers  []TierDTO `json:"tiers,omitempty"`
}

// RuleDTO describes one risk rule.
type RuleDTO struct {
	Rule       string `json:"rule"`
	Enabled    bool   `json:"enabled"`
	Threshold  string `json:"threshold,omitempty"`
	MaxCount   int    `json:"max_count,omitempty"`
	Window     string `json:"window,omitempty"`
	DailyLimit string `json:"daily_limit,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
}

// SettingsDTO is the full runtime configuration.
type SettingsDTO struct {
	Fee   FeeDTO    `json:"fee"`
	Rules []RuleDTO `json:"rules"`
}

func toFeeDTO(p fee.Policy) FeeDTO {
	dto := FeeDTO{Policy: string(p.Kind)}
	switch p.Kind {
	case fee.KindFlat:
		dto.Flat = p.Flat.String()
	case fee.KindPercent:
		dto.Rate = p.Rate.String()
	case fee.KindTiered:
		for _, t := range p.Tiers {
			dto.Tiers = append(dto.Tiers, TierDTO{From: t.From, Rate: t.Rate})
		}
	}
	return dto
}

func toRuleDTO(s settingssvc.RuleState) RuleDTO {
	dto := RuleDTO{Rule: string(s.Rule.Kind), Enabled: s.Enabled}
	switch s.Rule.Kind {
	case risk.KindMaxAmount:
		dto.Threshold = s.Rule.Threshold.String()
	case risk.KindVelocity:
		dto.MaxCount = s.Rule.MaxCount
		dto.Window = s.Rule.Window.String()
	case risk.KindDailyLimit:
		dto.DailyLimit = s.Rule.DailyLimit.String()
		dto.Timezone = time.UTC.String()
		if s.Rule.Location != nil {
			dto.Timezone = s.Rule.Location.String()
		}
	}
	return dto
}

func toSettingsDTO(svc *settingssvc.Service) SettingsDTO {
	states := svc.Rules()
	rules := make([]RuleDTO, 0, len(states))
	for _, s := range states {
		rules = append(rules, toRuleDTO(s))
	}
	return SettingsDTO{Fee: toFeeDTO(svc.FeePolicy()), Rules: rules}
}
