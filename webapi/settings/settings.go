package settings

import (
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/fee"
	"github.com/amirasaad/corebank/pkg/risk"
	settingssvc "github.com/amirasaad/corebank/pkg/service/settings"
	"github.com/amirasaad/corebank/webapi/common"
	"github.com/amirasaad/corebank/webapi/middleware"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the runtime configuration endpoints. Mutations require a
// bearer token when jwtSecret is set.
//
// Routes:
//   - GET /settings            : Active fee policy and every risk rule.
//   - PUT /settings/fee        : Select the fee policy.
//   - PUT /settings/risk/:rule : Enable, disable or tune a risk rule.
func Routes(app *fiber.App, svc *settingssvc.Service, jwtSecret string) {
	protected := middleware.JwtProtected(jwtSecret)
	app.Get("/settings", GetSettings(svc))
	app.Put("/settings/fee", protected, SetFee(svc))
	app.Put("/settings/risk/:rule", protected, SetRule(svc))
}

// GetSettings returns a Fiber handler for reading the runtime configuration.
// @Summary Get settings
// @Tags settings
// @Produce json
// @Success 200 {object} common.Response{data=SettingsDTO} "Settings fetched"
// @Router /settings [get]
func GetSettings(svc *settingssvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Settings fetched", toSettingsDTO(svc))
	}
}

// SetFee returns a Fiber handler for selecting the active fee policy.
// @Summary Select the fee policy
// @Description Takes effect for operations started after the change.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body FeeRequest true "Fee policy"
// @Success 200 {object} common.Response{data=SettingsDTO} "Fee policy updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /settings/fee [put]
// @Security Bearer
func SetFee(svc *settingssvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[FeeRequest](c)
		if input == nil {
			return err
		}
		params := settingssvc.FeeParams{Flat: input.Flat, Rate: input.Rate}
		for _, t := range input.Tiers {
			params.Tiers = append(params.Tiers, fee.Tier{From: t.From, Rate: t.Rate})
		}
		if _, err := svc.SetFeePolicy(input.Policy, params); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update fee policy", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Fee policy updated", toSettingsDTO(svc))
	}
}

// SetRule returns a Fiber handler for toggling and tuning a risk rule.
// @Summary Configure a risk rule
// @Tags settings
// @Accept json
// @Produce json
// @Param rule path string true "Rule name" Enums(max_amount, velocity, daily_limit)
// @Param request body RuleRequest true "Rule settings"
// @Success 200 {object} common.Response{data=SettingsDTO} "Risk rule updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /settings/risk/{rule} [put]
// @Security Bearer
func SetRule(svc *settingssvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := risk.ParseKind(c.Params("rule"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unknown risk rule", err)
		}
		input, err := common.BindAndValidate[RuleRequest](c)
		if input == nil {
			return err
		}
		rule, changed, err := ruleFromRequest(svc, kind, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid rule parameters", err)
		}
		if changed {
			if err := svc.UpdateRule(rule); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid rule parameters", err)
			}
		}
		if err := svc.SetRuleEnabled(string(kind), *input.Enabled); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update risk rule", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Risk rule updated", toSettingsDTO(svc))
	}
}

// ruleFromRequest overlays the parameters present in input on the current
// rule of the given kind.
func ruleFromRequest(svc *settingssvc.Service, kind risk.Kind, input *RuleRequest) (risk.Rule, bool, error) {
	var rule risk.Rule
	for _, s := range svc.Rules() {
		if s.Rule.Kind == kind {
			rule = s.Rule
		}
	}
	changed := false
	switch kind {
	case risk.KindMaxAmount:
		if input.Threshold != nil {
			rule.Threshold, changed = *input.Threshold, true
		}
	case risk.KindVelocity:
		if input.MaxCount != nil {
			rule.MaxCount, changed = *input.MaxCount, true
		}
		if input.Window != "" {
			window, err := time.ParseDuration(input.Window)
			if err != nil {
				return rule, false, domain.Validationf("invalid window %q", input.Window)
			}
			rule.Window, changed = window, true
		}
	case risk.KindDailyLimit:
		if input.DailyLimit != nil {
			rule.DailyLimit, changed = *input.DailyLimit, true
		}
		if input.Timezone != "" {
			loc, err := time.LoadLocation(input.Timezone)
			if err != nil {
				return rule, false, domain.Validationf("invalid timezone %q", input.Timezone)
			}
			rule.Location, changed = loc, true
		}
	}
	return rule, changed, nil
}
