package accounts_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cuentas-pro/internal/application/accounts"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/overdue"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria
//
// El mutex del store cumple el papel del row lock FOR UPDATE: el fake TxRunner
// lo toma durante toda la unidad de trabajo, así que dos operaciones
// concurrentes sobre el libro se serializan igual que contra PostgreSQL. Si el
// callback falla, se restaura el snapshot previo (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	accounts  map[string]entity.Account // key: customerID
	movements []entity.AccountMovement
	sales     []entity.Sale
	incomes   []entity.Income
	customers map[string]entity.Customer
}

func newMemStore() *memStore {
	return &memStore{
		accounts:  make(map[string]entity.Account),
		customers: make(map[string]entity.Customer),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	c.movements = append([]entity.AccountMovement(nil), s.movements...)
	c.sales = append([]entity.Sale(nil), s.sales...)
	c.incomes = append([]entity.Income(nil), s.incomes...)
	return c
}

func (s *memStore) restore(backup *memStore) {
	s.accounts = backup.accounts
	s.customers = backup.customers
	s.movements = backup.movements
	s.sales = backup.sales
	s.incomes = backup.incomes
}

// seedCustomer agrega un cliente y devuelve su id.
func (s *memStore) seedCustomer(id string) {
	s.customers[id] = entity.Customer{ID: id, FirstName: "Cliente", LastName: id, IsActive: true}
}

// seedAccount agrega una cuenta ya existente para el cliente.
func (s *memStore) seedAccount(customerID string, balance, creditLimit decimal.Decimal, status entity.AccountStatus) entity.Account {
	a := entity.Account{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		Balance:         balance,
		CreditLimit:     creditLimit,
		Status:          status,
		PaymentTermDays: 30,
	}
	s.accounts[customerID] = a
	return a
}

// seedPendingSale agrega una venta a cuenta corriente sin saldar.
func (s *memStore) seedPendingSale(customerID, number string, total decimal.Decimal) entity.Sale {
	sale := entity.Sale{
		ID:          uuid.New().String(),
		SaleNumber:  number,
		CustomerID:  customerID,
		Total:       total,
		Status:      entity.SalePending,
		IsOnAccount: true,
		SaleDate:    time.Now(),
	}
	s.sales = append(s.sales, sale)
	return sale
}

// lastChargeDate devuelve la fecha del cargo más reciente de la cuenta.
func (s *memStore) lastChargeDate(accountID string) (time.Time, bool) {
	var last time.Time
	found := false
	for _, m := range s.movements {
		if m.AccountID == accountID && m.Type == entity.MovementCharge && m.CreatedAt.After(last) {
			last = m.CreatedAt
			found = true
		}
	}
	return last, found
}

// movementsFor devuelve los movimientos de la cuenta en orden de inserción.
func (s *memStore) movementsFor(accountID string) []entity.AccountMovement {
	var out []entity.AccountMovement
	for _, m := range s.movements {
		if m.AccountID == accountID {
			out = append(out, m)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Fake TxRunner
// ──────────────────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	s *memStore
}

func (r *fakeTxRunner) RunLedger(_ context.Context, fn func(
	accountRepo repository.AccountRepository,
	movementRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
	incomeRepo repository.IncomeRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	backup := r.s.clone()
	err := fn(&fakeAccountRepo{s: r.s}, &fakeMovementRepo{s: r.s}, &fakeSaleRepo{s: r.s}, &fakeIncomeRepo{s: r.s})
	if err != nil {
		r.s.restore(backup)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fake repos
// ──────────────────────────────────────────────────────────────────────────────

type fakeAccountRepo struct{ s *memStore }

func (r *fakeAccountRepo) Create(account *entity.Account) error {
	if _, ok := r.s.accounts[account.CustomerID]; ok {
		return nil // emula el unique violation absorbido del repo real
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	r.s.accounts[account.CustomerID] = *account
	return nil
}

func (r *fakeAccountRepo) GetByCustomerID(customerID string) (*entity.Account, error) {
	a, ok := r.s.accounts[customerID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	copied := a
	return &copied, nil
}

// GetByCustomerIDForUpdate: el lock ya lo sostiene el fake TxRunner.
func (r *fakeAccountRepo) GetByCustomerIDForUpdate(customerID string) (*entity.Account, error) {
	return r.GetByCustomerID(customerID)
}

func (r *fakeAccountRepo) Save(account *entity.Account) error {
	r.s.accounts[account.CustomerID] = *account
	return nil
}

func (r *fakeAccountRepo) List(filters repository.AccountFilters) ([]*repository.AccountWithCustomer, int, error) {
	var out []*repository.AccountWithCustomer
	for customerID, a := range r.s.accounts {
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		if filters.HasDebt && !a.Balance.GreaterThan(decimal.Zero) {
			continue
		}
		item := &repository.AccountWithCustomer{Account: a, Customer: r.s.customers[customerID]}
		out = append(out, item)
	}
	return out, len(out), nil
}

func (r *fakeAccountRepo) Debtors() ([]*repository.AccountWithCustomer, error) {
	items, _, err := r.List(repository.AccountFilters{HasDebt: true})
	return items, err
}

func (r *fakeAccountRepo) OverdueAlerts() ([]*entity.OverdueAlert, error) {
	var out []*entity.OverdueAlert
	for customerID, a := range r.s.accounts {
		if a.DaysOverdue > 0 && a.Balance.GreaterThan(decimal.Zero) {
			c := r.s.customers[customerID]
			out = append(out, &entity.OverdueAlert{
				CustomerID:   customerID,
				CustomerName: c.FullName(),
				Balance:      a.Balance,
				DaysOverdue:  a.DaysOverdue,
			})
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) Stats() (*entity.AccountStats, error) {
	stats := &entity.AccountStats{TotalDebt: decimal.Zero, AverageDebt: decimal.Zero, TotalOverdue: decimal.Zero}
	for _, a := range r.s.accounts {
		stats.TotalAccounts++
		if a.Status == entity.AccountActive {
			stats.ActiveAccounts++
		}
		if a.Status == entity.AccountSuspended {
			stats.SuspendedAccounts++
		}
		if a.Balance.GreaterThan(decimal.Zero) {
			stats.TotalDebtors++
			stats.TotalDebt = stats.TotalDebt.Add(a.Balance)
		}
	}
	return stats, nil
}

// RecomputeOverdue replica el UPDATE masivo del repo real: solo cuentas con
// deuda y al menos un cargo, fórmula de overdue.Days, y el contador Suspended
// cuenta únicamente las transiciones active → suspended de esta corrida.
func (r *fakeAccountRepo) RecomputeOverdue(suspendAfterDays int) (*repository.OverdueRecomputeResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	result := &repository.OverdueRecomputeResult{}
	for customerID, a := range r.s.accounts {
		if !a.Balance.GreaterThan(decimal.Zero) {
			continue
		}
		lastCharge, ok := r.s.lastChargeDate(a.ID)
		if !ok {
			continue
		}
		a.DaysOverdue = overdue.Days(lastCharge, now, a.PaymentTermDays)
		if a.Status == entity.AccountActive && overdue.ShouldSuspend(a.DaysOverdue, suspendAfterDays) {
			a.Status = entity.AccountSuspended
			result.Suspended++
		}
		r.s.accounts[customerID] = a
		result.Updated++
	}
	return result, nil
}

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(movement *entity.AccountMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *fakeMovementRepo) ListByAccount(accountID string, limit, offset int) ([]*entity.AccountMovement, int, error) {
	all := r.s.movementsFor(accountID)
	total := len(all)
	// más recientes primero, como el repo real
	var out []*entity.AccountMovement
	for i := len(all) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		m := all[i]
		out = append(out, &m)
	}
	return out, total, nil
}

func (r *fakeMovementRepo) TotalsByAccount(accountID string) (*entity.MovementTotals, error) {
	t := &entity.MovementTotals{TotalCharges: decimal.Zero, TotalPayments: decimal.Zero}
	for _, m := range r.s.movementsFor(accountID) {
		switch m.Type {
		case entity.MovementCharge:
			t.TotalCharges = t.TotalCharges.Add(m.Amount)
		case entity.MovementPayment:
			t.TotalPayments = t.TotalPayments.Add(m.Amount.Abs())
		}
	}
	return t, nil
}

func (r *fakeMovementRepo) ChargeReferenceIDs(accountID, referenceType string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, m := range r.s.movements {
		if m.AccountID == accountID && m.Type == entity.MovementCharge &&
			m.ReferenceType == referenceType && m.ReferenceID != "" {
			out[m.ReferenceID] = struct{}{}
		}
	}
	return out, nil
}

type fakeSaleRepo struct{ s *memStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	r.s.sales = append(r.s.sales, *sale)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.s.sales {
		if s.ID == id {
			copied := s
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for i := range r.s.sales {
		s := r.s.sales[i]
		out = append(out, &s)
	}
	return out, nil
}

func (r *fakeSaleRepo) ListPendingOnAccount(customerID string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for i := range r.s.sales {
		s := r.s.sales[i]
		if s.CustomerID == customerID && s.Status == entity.SalePending && s.IsOnAccount {
			out = append(out, &s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) SettlePendingOnAccount(customerID string) (int, error) {
	count := 0
	for i := range r.s.sales {
		s := &r.s.sales[i]
		if s.CustomerID == customerID && s.Status == entity.SalePending && s.IsOnAccount {
			s.Status = entity.SaleCompleted
			s.IsOnAccount = false
			count++
		}
	}
	return count, nil
}

func (r *fakeSaleRepo) LastNumberForUpdate(prefix string, year int) (string, error) {
	return "", nil
}

type fakeIncomeRepo struct{ s *memStore }

func (r *fakeIncomeRepo) Create(income *entity.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	r.s.incomes = append(r.s.incomes, *income)
	return nil
}

func (r *fakeIncomeRepo) ListPendingOnAccount(customerID string) ([]*entity.Income, error) {
	var out []*entity.Income
	for i := range r.s.incomes {
		inc := r.s.incomes[i]
		if inc.CustomerID == customerID && inc.IsOnAccount && !inc.IsPaid {
			out = append(out, &inc)
		}
	}
	return out, nil
}

func (r *fakeIncomeRepo) MarkPaidOnAccount(customerID string) (int, error) {
	count := 0
	for i := range r.s.incomes {
		inc := &r.s.incomes[i]
		if inc.CustomerID == customerID && inc.IsOnAccount && !inc.IsPaid {
			inc.IsPaid = true
			count++
		}
	}
	return count, nil
}

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) Create(customer *entity.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	r.s.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := c
	return &copied, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		copied := c
		out = append(out, &copied)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fake caja
// ──────────────────────────────────────────────────────────────────────────────

type fakeCashRegister struct {
	mu       sync.Mutex
	payments []accounts.CashPayment
	err      error // si no es nil, el registro en caja falla
}

func (f *fakeCashRegister) RegisterAccountPayment(_ context.Context, payment accounts.CashPayment, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payments = append(f.payments, payment)
	return nil
}
