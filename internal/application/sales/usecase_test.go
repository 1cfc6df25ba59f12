package sales_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/application/sales"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
	"github.com/tu-usuario/cuentas-pro/internal/domain/series"
	"github.com/tu-usuario/cuentas-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
//
// El mutex del store hace de lock FOR UPDATE de la serie: el fake TxRunner lo
// sostiene durante toda la emisión, serializando las ventas concurrentes.
// ──────────────────────────────────────────────────────────────────────────────

type saleStore struct {
	mu        sync.Mutex
	sales     []entity.Sale
	byNumber  map[string]struct{}
	customers map[string]entity.Customer
}

func newSaleStore() *saleStore {
	return &saleStore{
		byNumber:  make(map[string]struct{}),
		customers: make(map[string]entity.Customer),
	}
}

type fakeSaleTxRunner struct{ s *saleStore }

func (r *fakeSaleTxRunner) RunSale(_ context.Context, fn func(saleRepo repository.SaleRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(&fakeSaleRepo{s: r.s})
}

type fakeSaleRepo struct{ s *saleStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	if _, ok := r.s.byNumber[sale.SaleNumber]; ok {
		return domain.ErrDuplicate
	}
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	r.s.byNumber[sale.SaleNumber] = struct{}{}
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

func (r *fakeSaleRepo) ListPendingOnAccount(string) ([]*entity.Sale, error) { return nil, nil }
func (r *fakeSaleRepo) SettlePendingOnAccount(string) (int, error)          { return 0, nil }

// LastNumberForUpdate devuelve el mayor consecutivo emitido de la serie.
func (r *fakeSaleRepo) LastNumberForUpdate(prefix string, year int) (string, error) {
	last := ""
	highest := 0
	for number := range r.s.byNumber {
		n, err := series.Parse(prefix, year, number)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
			last = number
		}
	}
	return last, nil
}

type fakeCustomerRepo struct{ s *saleStore }

func (r *fakeCustomerRepo) Create(customer *entity.Customer) error {
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

func (r *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error) { return nil, nil }

func newTestUseCase(s *saleStore) *sales.UseCase {
	return sales.NewUseCase(&fakeSaleTxRunner{s: s}, &fakeSaleRepo{s: s}, &fakeCustomerRepo{s: s}, logger.Nop())
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_FirstNumberOfYear(t *testing.T) {
	s := newSaleStore()
	s.customers["cli-1"] = entity.Customer{ID: "cli-1", FirstName: "Ana"}
	uc := newTestUseCase(s)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "cli-1",
		Total:      dec("120.00"),
	}, "user-1")
	require.NoError(t, err)

	assert.Regexp(t, `^VENTA-\d{4}-00001$`, out.SaleNumber)
	assert.Equal(t, "completed", out.Status, "venta de contado queda completada")
}

func TestCreateSale_OnAccountIsPending(t *testing.T) {
	s := newSaleStore()
	s.customers["cli-1"] = entity.Customer{ID: "cli-1", FirstName: "Ana"}
	uc := newTestUseCase(s)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID:  "cli-1",
		Total:       dec("80.00"),
		IsOnAccount: true,
	}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", out.Status)
	assert.True(t, out.IsOnAccount)
}

func TestCreateSale_UnknownCustomer(t *testing.T) {
	uc := newTestUseCase(newSaleStore())
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "no-existe",
		Total:      dec("10.00"),
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCreateSale_InvalidTotal(t *testing.T) {
	s := newSaleStore()
	s.customers["cli-1"] = entity.Customer{ID: "cli-1"}
	uc := newTestUseCase(s)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "cli-1",
		Total:      dec("-5.00"),
	}, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Propiedad de unicidad: M ventas concurrentes del mismo año reciben números
// distintos, sin huecos y estrictamente crecientes.
func TestCreateSale_ConcurrentNumbering(t *testing.T) {
	const m = 20

	s := newSaleStore()
	s.customers["cli-1"] = entity.Customer{ID: "cli-1"}
	uc := newTestUseCase(s)

	type result struct {
		number string
		err    error
	}

	var wg sync.WaitGroup
	results := make(chan result, m)
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
				CustomerID: "cli-1",
				Total:      dec("10.00"),
			}, "user-1")
			if err != nil {
				results <- result{err: err}
				return
			}
			results <- result{number: out.SaleNumber}
		}()
	}
	wg.Wait()
	close(results)

	var got []string
	seen := make(map[string]struct{})
	for r := range results {
		require.NoError(t, r.err)
		_, dup := seen[r.number]
		assert.False(t, dup, "número repetido: %s", r.number)
		seen[r.number] = struct{}{}
		got = append(got, r.number)
	}
	require.Len(t, got, m)

	// sin huecos: al ordenar, los consecutivos son 1..m
	sort.Strings(got)
	for i, n := range got {
		assert.True(t, len(n) > 6 && n[len(n)-5:] == fmt.Sprintf("%05d", i+1), "consecutivo %d: %s", i+1, n)
	}
}

func TestGetSale(t *testing.T) {
	s := newSaleStore()
	s.customers["cli-1"] = entity.Customer{ID: "cli-1"}
	uc := newTestUseCase(s)

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		CustomerID: "cli-1",
		Total:      dec("42.00"),
	}, "user-1")
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.SaleNumber, got.SaleNumber)

	_, err = uc.GetSale(context.Background(), "otro")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
