package app

import (
	"fmt"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/service/account"
	"github.com/amirasaad/corebank/pkg/service/customer"
	"github.com/amirasaad/corebank/pkg/service/settings"
	"github.com/amirasaad/corebank/pkg/service/transaction"
)

type App struct {
	Deps               *config.Deps
	Config             *config.App
	SettingsService    *settings.Service
	CustomerService    *customer.Service
	AccountService     *account.Service
	TransactionService *transaction.Service
}

// New builds every service from deps and subscribes the event handlers.
func New(deps *config.Deps) (*App, error) {
	settingsService, err := settings.NewService(*deps)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	app := &App{
		Deps:               deps,
		Config:             deps.Config,
		SettingsService:    settingsService,
		CustomerService:    customer.NewService(*deps),
		AccountService:     account.NewService(*deps),
		TransactionService: transaction.NewService(*deps, settingsService),
	}
	app.setupEventBus()
	return app, nil
}
