// Package memory keeps accounts, transactions and customers in process
// memory behind the repository contracts. Units of work stage their writes
// and apply them only when the work function succeeds.
package memory

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/amirasaad/corebank/pkg/domain"
	"github.com/amirasaad/corebank/pkg/domain/account"
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
)

type txRow struct {
	tx  account.Transaction
	seq int64
}

type tables struct {
	accounts     map[uuid.UUID]account.Account
	transactions map[uuid.UUID]txRow
	customers    map[uuid.UUID]customer.Customer
}

func newTables() *tables {
	return &tables{
		accounts:     make(map[uuid.UUID]account.Account),
		transactions: make(map[uuid.UUID]txRow),
		customers:    make(map[uuid.UUID]customer.Customer),
	}
}

// Store is the shared in-memory database.
type Store struct {
	mu   sync.RWMutex
	work sync.Mutex
	data *tables
	seq  int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{data: newTables()}
}

// UoW implements repository.UnitOfWork over a Store.
type UoW struct {
	store        *Store
	staged       *tables
	repoRegistry map[reflect.Type]func(*UoW) any
}

// NewUoW creates a unit of work factory over store.
func NewUoW(store *Store) *UoW {
	return &UoW{
		store: store,
		repoRegistry: map[reflect.Type]func(*UoW) any{
			repository.AccountRepositoryType:     func(u *UoW) any { return &accountRepository{u: u} },
			repository.TransactionRepositoryType: func(u *UoW) any { return &transactionRepository{u: u} },
			repository.CustomerRepositoryType:    func(u *UoW) any { return &customerRepository{u: u} },
		},
	}
}

// Do runs fn with a staged view of the store. Units of work are serialized,
// which makes every read inside one behave as a locking read.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.staged != nil {
		return fn(u)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.work.Lock()
	defer u.store.work.Unlock()

	txn := &UoW{store: u.store, staged: newTables(), repoRegistry: u.repoRegistry}
	if err := fn(txn); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.commit(txn.staged)
	return nil
}

// GetRepository returns a repository bound to this unit of work.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, &repository.UnsupportedRepositoryError{Type: repoType}
	}
	return constructor(u), nil
}

func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return repository.Typed[repository.AccountRepository](u)
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return repository.Typed[repository.TransactionRepository](u)
}

func (u *UoW) CustomerRepository() (repository.CustomerRepository, error) {
	return repository.Typed[repository.CustomerRepository](u)
}

func (s *Store) commit(staged *tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range staged.accounts {
		s.data.accounts[id] = a
	}
	for id, c := range staged.customers {
		s.data.customers[id] = c
	}
	for id, row := range staged.transactions {
		s.data.transactions[id] = row
	}
}

func (s *Store) nextSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// write applies fn to the staging tables inside a unit of work, or to the
// store directly otherwise.
func (u *UoW) write(fn func(t *tables)) {
	if u.staged != nil {
		fn(u.staged)
		return
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	fn(u.store.data)
}

func (u *UoW) account(id uuid.UUID) (account.Account, bool) {
	if u.staged != nil {
		if a, ok := u.staged.accounts[id]; ok {
			return a, true
		}
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	a, ok := u.store.data.accounts[id]
	return a, ok
}

func (u *UoW) transaction(id uuid.UUID) (txRow, bool) {
	if u.staged != nil {
		if r, ok := u.staged.transactions[id]; ok {
			return r, true
		}
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	r, ok := u.store.data.transactions[id]
	return r, ok
}

// transactions returns the merged view of stored and staged rows matching keep.
func (u *UoW) transactions(keep func(*account.Transaction) bool) []txRow {
	merged := make(map[uuid.UUID]txRow)
	u.store.mu.RLock()
	for id, r := range u.store.data.transactions {
		merged[id] = r
	}
	u.store.mu.RUnlock()
	if u.staged != nil {
		for id, r := range u.staged.transactions {
			merged[id] = r
		}
	}
	out := make([]txRow, 0)
	for _, r := range merged {
		tx := r.tx
		if keep(&tx) {
			out = append(out, r)
		}
	}
	return out
}

func (u *UoW) customers() []customer.Customer {
	merged := make(map[uuid.UUID]customer.Customer)
	u.store.mu.RLock()
	for id, c := range u.store.data.customers {
		merged[id] = c
	}
	u.store.mu.RUnlock()
	if u.staged != nil {
		for id, c := range u.staged.customers {
			merged[id] = c
		}
	}
	out := make([]customer.Customer, 0, len(merged))
	for _, c := range merged {
		out = append(out, c)
	}
	return out
}

type accountRepository struct{ u *UoW }

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, ok := r.u.account(id)
	if !ok {
		return nil, domain.NotFoundf("account %s", id)
	}
	return &a, nil
}

func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.Get(ctx, id)
}

func (r *accountRepository) Create(ctx context.Context, acc *account.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, exists := r.u.account(acc.ID); exists {
		return domain.ErrAlreadyExists
	}
	cp := *acc
	r.u.write(func(t *tables) { t.accounts[acc.ID] = cp })
	return nil
}

func (r *accountRepository) Update(ctx context.Context, acc *account.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, exists := r.u.account(acc.ID); !exists {
		return domain.NotFoundf("account %s", acc.ID)
	}
	cp := *acc
	r.u.write(func(t *tables) { t.accounts[acc.ID] = cp })
	return nil
}

type transactionRepository struct{ u *UoW }

func (r *transactionRepository) Create(ctx context.Context, tx *account.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, exists := r.u.transaction(tx.ID); exists {
		return domain.ErrAlreadyExists
	}
	row := txRow{tx: *tx, seq: r.u.store.nextSeq()}
	r.u.write(func(t *tables) { t.transactions[tx.ID] = row })
	return nil
}

func (r *transactionRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status account.TransactionStatus,
	meta account.Metadata,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row, ok := r.u.transaction(id)
	if !ok {
		return domain.NotFoundf("transaction %s", id)
	}
	if row.tx.Status == status {
		return nil
	}
	if row.tx.Status != account.TransactionPending {
		return &domain.StatusTransitionError{Entity: "transaction", From: string(row.tx.Status), To: string(status)}
	}
	row.tx.Status = status
	row.tx.Metadata = meta
	row.tx.UpdatedAt = time.Now().UTC()
	r.u.write(func(t *tables) { t.transactions[id] = row })
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*account.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, ok := r.u.transaction(id)
	if !ok {
		return nil, domain.NotFoundf("transaction %s", id)
	}
	tx := row.tx
	return &tx, nil
}

func (r *transactionRepository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
	limit, offset int,
) ([]*account.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := r.u.transactions(func(tx *account.Transaction) bool { return tx.Involves(accountID) })
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].tx.CreatedAt.Equal(rows[j].tx.CreatedAt) {
			return rows[i].tx.CreatedAt.After(rows[j].tx.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	return page(rows, limit, offset), nil
}

func (r *transactionRepository) ListSince(
	ctx context.Context,
	accountID uuid.UUID,
	since time.Time,
) ([]*account.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := r.u.transactions(func(tx *account.Transaction) bool {
		return tx.AccountID == accountID && !tx.CreatedAt.Before(since)
	})
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].tx.CreatedAt.Equal(rows[j].tx.CreatedAt) {
			return rows[i].tx.CreatedAt.Before(rows[j].tx.CreatedAt)
		}
		return rows[i].seq < rows[j].seq
	})
	return page(rows, len(rows), 0), nil
}

func page(rows []txRow, limit, offset int) []*account.Transaction {
	if offset >= len(rows) {
		return []*account.Transaction{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	out := make([]*account.Transaction, 0, end-offset)
	for _, r := range rows[offset:end] {
		tx := r.tx
		out = append(out, &tx)
	}
	return out
}

type customerRepository struct{ u *UoW }

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, c := range r.u.customers() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.NotFoundf("customer %s", id)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, c := range r.u.customers() {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, domain.NotFoundf("customer with email %s", email)
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, existing := range r.u.customers() {
		if existing.ID == c.ID || existing.Email == c.Email {
			return domain.ErrAlreadyExists
		}
	}
	cp := *c
	r.u.write(func(t *tables) { t.customers[c.ID] = cp })
	return nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
