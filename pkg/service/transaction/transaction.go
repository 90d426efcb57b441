// Package transaction orchestrates deposits, withdrawals and transfers.
//
// Every operation follows the same protocol: validate the request, load and
// check the involved accounts, persist a PENDING transaction, price it,
// check funds, screen it through the risk pipeline and finally move the
// balances and approve it inside one unit of work. Once the PENDING record
// exists, any failure drives it to REJECTED before the error is returned.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/amirasaad/corebank/pkg/config"
	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/eventbus"
	"github.com/amirasaad/corebank/pkg/lock"
	"github.com/amirasaad/corebank/pkg/money"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/amirasaad/corebank/pkg/service/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Policies provides the fee policy and risk pipeline an operation runs with.
type Policies interface {
	Snapshot() settings.Snapshot
}

// Service executes money movements.
type Service struct {
	uow      repository.UnitOfWork
	policies Policies
	locks    *lock.Keyed
	bus      eventbus.Bus
	tracer   trace.Tracer
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the time source used for creation timestamps and risk windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocks shares a keyed lock set between services.
func WithLocks(l *lock.Keyed) Option {
	return func(s *Service) { s.locks = l }
}

// NewService creates a transaction service.
func NewService(deps config.Deps, policies Policies, opts ...Option) *Service {
	s := &Service{
		uow:      deps.Uow,
		policies: policies,
		locks:    lock.NewKeyed(),
		bus:      deps.EventBus,
		tracer:   deps.Tracer,
		logger:   deps.Logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("github.com/amirasaad/corebank/pkg/service/transaction")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type operation struct {
	typ    account.TransactionType
	source uuid.UUID
	target *uuid.UUID
	amount decimal.Decimal
}

func (op operation) accountIDs() []uuid.UUID {
	ids := []uuid.UUID{op.source}
	if op.target != nil {
		ids = append(ids, *op.target)
	}
	return ids
}

// Deposit credits amount minus the fee to the account.
func (s *Service) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*account.Transaction, error) {
	return s.execute(ctx, operation{typ: account.TypeDeposit, source: accountID, amount: amount})
}

// Withdraw debits amount plus the fee from the account.
func (s *Service) Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*account.Transaction, error) {
	return s.execute(ctx, operation{typ: account.TypeWithdraw, source: accountID, amount: amount})
}

// Transfer debits amount plus the fee from one account and credits amount
// to another. Both accounts must hold the same currency.
func (s *Service) Transfer(
	ctx context.Context,
	fromID, toID uuid.UUID,
	amount decimal.Decimal,
) (*account.Transaction, error) {
	return s.execute(ctx, operation{typ: account.TypeTransfer, source: fromID, target: &toID, amount: amount})
}

func (s *Service) execute(ctx context.Context, op operation) (result *account.Transaction, err error) {
	ctx, span := s.tracer.Start(ctx, "transaction."+strings.ToLower(string(op.typ)),
		trace.WithAttributes(
			attribute.String("account.id", op.source.String()),
			attribute.String("transaction.amount", op.amount.String()),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	logger := s.logger.With("op", op.typ, "account_id", op.source, "amount", op.amount)
	if op.target != nil {
		logger = logger.With("target_account_id", *op.target)
	}

	if !op.amount.IsPositive() {
		return nil, domain.Validationf("amount must be positive, got %s", op.amount)
	}
	if err := money.CheckRange(op.amount); err != nil {
		return nil, domain.Validationf("%v", err)
	}
	if op.target != nil && *op.target == op.source {
		return nil, domain.Validationf("cannot transfer to the same account")
	}

	unlock, err := s.locks.Lock(ctx, op.accountIDs()...)
	if err != nil {
		return nil, err
	}
	defer unlock()

	snap := s.policies.Snapshot()

	source, target, err := s.load(ctx, op)
	if err != nil {
		logger.Warn("accounts could not be loaded", "error", err)
		return nil, err
	}
	if err := money.CheckPrecision(op.amount, source.Currency); err != nil {
		return nil, domain.Validationf("%v", err)
	}
	if target != nil && target.Currency != source.Currency {
		return nil, domain.Validationf("currency mismatch: %s to %s", source.Currency, target.Currency)
	}
	if err := source.CheckCanOperate(); err != nil {
		return nil, err
	}
	if target != nil {
		if err := target.CheckCanOperate(); err != nil {
			return nil, err
		}
	}

	tx, err := account.NewTransaction(account.TransactionParams{
		Type:            op.typ,
		AccountID:       op.source,
		TargetAccountID: op.target,
		Amount:          op.amount,
		Currency:        source.Currency,
		CreatedAt:       s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.create(ctx, tx); err != nil {
		logger.Error("pending transaction could not be persisted", "error", err)
		return nil, err
	}
	span.SetAttributes(attribute.String("transaction.id", tx.ID.String()))
	logger = logger.With("transaction_id", tx.ID)

	defer func() {
		if err != nil && tx.Status == account.TransactionPending {
			err = s.reject(ctx, tx, err, logger)
		}
	}()

	fee := money.RoundTo(snap.Fee.Calculate(op.amount), source.Currency)
	if err = tx.RecordFee(fee); err != nil {
		return nil, err
	}

	switch op.typ {
	case account.TypeDeposit:
		if fee.GreaterThanOrEqual(op.amount) {
			return nil, domain.Validationf("fee %s consumes the whole deposit of %s", fee, op.amount)
		}
	default:
		if !source.CanCover(op.amount.Add(fee)) {
			return nil, domain.ErrInsufficientFunds
		}
	}

	now := s.now()
	history, err := s.history(ctx, snap, source.ID, now)
	if err != nil {
		return nil, err
	}
	decision := snap.Pipeline.Evaluate(tx, source, history, now)
	if !decision.Passed {
		if err = tx.RecordRisk(account.RiskRejected, decision.Reason, now); err != nil {
			return nil, err
		}
		return nil, &domain.RejectionError{Rule: string(decision.Rule), Reason: decision.Reason}
	}
	if err = tx.RecordRisk(account.RiskPassed, "", now); err != nil {
		return nil, err
	}

	if err = s.apply(ctx, op, tx, fee); err != nil {
		return nil, err
	}
	if err = tx.TransitionTo(account.TransactionApproved); err != nil {
		return nil, err
	}

	logger.Info("transaction approved", "fee", fee)
	s.emit(ctx, &events.TransactionApproved{TransactionEvent: eventFor(tx, s.now())}, logger)
	return tx, nil
}

func (s *Service) load(ctx context.Context, op operation) (source, target *account.Account, err error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, nil, domain.NewInfrastructureError("account repository", err)
	}
	source, err = repo.Get(ctx, op.source)
	if err != nil {
		return nil, nil, domain.Classify("load account", err)
	}
	if op.target != nil {
		target, err = repo.Get(ctx, *op.target)
		if err != nil {
			return nil, nil, domain.Classify("load account", err)
		}
	}
	return source, target, nil
}

func (s *Service) create(ctx context.Context, tx *account.Transaction) error {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return domain.NewInfrastructureError("transaction repository", err)
	}
	return domain.Classify("create transaction", repo.Create(ctx, tx))
}

// history returns the source account's transactions from the earliest
// instant any enabled rule looks at.
func (s *Service) history(
	ctx context.Context,
	snap settings.Snapshot,
	accountID uuid.UUID,
	now time.Time,
) ([]*account.Transaction, error) {
	since, needed := snap.Pipeline.Since(now)
	if !needed {
		return nil, nil
	}
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, domain.NewInfrastructureError("transaction repository", err)
	}
	history, err := repo.ListSince(ctx, accountID, since)
	if err != nil {
		return nil, domain.Classify("list recent transactions", err)
	}
	return history, nil
}

// apply re-reads the accounts under row locks, moves the balances and
// approves the transaction in one unit of work.
func (s *Service) apply(ctx context.Context, op operation, tx *account.Transaction, fee decimal.Decimal) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accRepo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}

		ids := op.accountIDs()
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
		locked := make(map[uuid.UUID]*account.Account, len(ids))
		for _, id := range ids {
			acc, err := accRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			locked[id] = acc
		}

		source := locked[op.source]
		switch op.typ {
		case account.TypeDeposit:
			if err := source.ApplyCredit(op.amount.Sub(fee)); err != nil {
				return err
			}
		case account.TypeWithdraw:
			if err := source.ApplyDebit(op.amount.Add(fee)); err != nil {
				return err
			}
		case account.TypeTransfer:
			if err := source.ApplyDebit(op.amount.Add(fee)); err != nil {
				return err
			}
			if err := locked[*op.target].ApplyCredit(op.amount); err != nil {
				return err
			}
		}

		for _, id := range ids {
			locked[id].UpdatedAt = s.now()
			if err := accRepo.Update(ctx, locked[id]); err != nil {
				return err
			}
		}
		return txRepo.UpdateStatus(ctx, tx.ID, account.TransactionApproved, tx.Metadata)
	})
	return domain.Classify("apply transaction", err)
}

// reject persists REJECTED for a transaction that failed with cause. The
// write ignores the caller's cancellation so an aborted request still
// leaves a terminal record behind.
func (s *Service) reject(ctx context.Context, tx *account.Transaction, cause error, logger *slog.Logger) error {
	tx.RecordReason(cause.Error())
	writeCtx := context.WithoutCancel(ctx)

	repo, err := s.uow.TransactionRepository()
	if err == nil {
		err = repo.UpdateStatus(writeCtx, tx.ID, account.TransactionRejected, tx.Metadata)
	}
	if err != nil {
		logger.Error("transaction left PENDING, rejection could not be persisted",
			"cause", cause, "error", err)
		return &domain.InfrastructureError{Op: "reject transaction", Err: errors.Join(cause, err)}
	}
	if err := tx.TransitionTo(account.TransactionRejected); err != nil {
		return errors.Join(cause, err)
	}

	logger.Warn("transaction rejected", "reason", cause)
	s.emit(writeCtx, &events.TransactionRejected{
		TransactionEvent: eventFor(tx, s.now()),
		Reason:           cause.Error(),
	}, logger)
	return cause
}

func (s *Service) emit(ctx context.Context, event events.Event, logger *slog.Logger) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		logger.Warn("event could not be published", "event_type", event.Type(), "error", err)
	}
}

func eventFor(tx *account.Transaction, at time.Time) events.TransactionEvent {
	return events.TransactionEvent{
		TransactionID:   tx.ID,
		TransactionType: string(tx.Type),
		AccountID:       tx.AccountID,
		TargetAccountID: tx.TargetAccountID,
		Amount:          tx.Amount,
		Fee:             tx.Fee(),
		Currency:        string(tx.Currency),
		OccurredAt:      at,
	}
}

// ListTransactions returns a page of the account's transactions, newest
// first, including transfers it received.
func (s *Service) ListTransactions(
	ctx context.Context,
	accountID uuid.UUID,
	limit, offset int,
) ([]*account.Transaction, error) {
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	accRepo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, domain.NewInfrastructureError("account repository", err)
	}
	if _, err := accRepo.Get(ctx, accountID); err != nil {
		return nil, domain.Classify("load account", err)
	}
	txRepo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, domain.NewInfrastructureError("transaction repository", err)
	}
	txs, err := txRepo.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, domain.Classify("list transactions", err)
	}
	return txs, nil
}
