// Package memory provides map-backed implementations of the repository
// interfaces. It backs the service when no Postgres DSN is configured and
// keeps the repository contract testable without a database. The store
// mirrors the schema's invariants: unique keys, referential integrity and
// atomic stock reservation.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

// Store holds every entity table behind one mutex so cross-entity checks
// (foreign keys, stock reservation) stay atomic.
type Store struct {
	mu sync.RWMutex

	admins    map[string]domain.AdminUser
	doctors   map[string]domain.DoctorUser
	suppliers map[string]domain.Supplier
	drugs     map[string]domain.Drug
	orders    map[string]domain.Order
	reports   map[string]domain.SalesReport
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		admins:    make(map[string]domain.AdminUser),
		doctors:   make(map[string]domain.DoctorUser),
		suppliers: make(map[string]domain.Supplier),
		drugs:     make(map[string]domain.Drug),
		orders:    make(map[string]domain.Order),
		reports:   make(map[string]domain.SalesReport),
	}
}

// AdminUsers returns the admin user repository view of the store.
func (s *Store) AdminUsers() repository.AdminUserRepository { return &adminUserStore{s} }

// DoctorUsers returns the doctor user repository view of the store.
func (s *Store) DoctorUsers() repository.DoctorUserRepository { return &doctorUserStore{s} }

// Suppliers returns the supplier repository view of the store.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierStore{s} }

// Drugs returns the drug repository view of the store.
func (s *Store) Drugs() repository.DrugRepository { return &drugStore{s} }

// Orders returns the order repository view of the store.
func (s *Store) Orders() repository.OrderRepository { return &orderStore{s} }

// SalesReports returns the sales report repository view of the store.
func (s *Store) SalesReports() repository.SalesReportRepository { return &salesReportStore{s} }

func window[T any](items []T, limit, offset int) []T {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// adminUserStore

type adminUserStore struct{ s *Store }

func (a *adminUserStore) Create(_ context.Context, user *domain.AdminUser) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	for _, existing := range a.s.admins {
		if existing.Username == user.Username {
			return apperrors.NewConflict("admin user already exists", map[string]any{"username": user.Username})
		}
	}

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	a.s.admins[user.ID] = *user
	return nil
}

func (a *adminUserStore) GetByID(_ context.Context, id string) (*domain.AdminUser, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	user, ok := a.s.admins[id]
	if !ok {
		return nil, apperrors.NewNotFound("admin user", nil)
	}
	return &user, nil
}

func (a *adminUserStore) GetByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	for _, user := range a.s.admins {
		if user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, apperrors.NewNotFound("admin user", nil)
}

func (a *adminUserStore) List(_ context.Context, filter repository.ListFilter) ([]domain.AdminUser, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	users := make([]domain.AdminUser, 0, len(a.s.admins))
	for _, user := range a.s.admins {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return window(users, filter.Limit, filter.Offset), nil
}

func (a *adminUserStore) Update(_ context.Context, id string, user *domain.AdminUser) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	existing, ok := a.s.admins[id]
	if !ok {
		return apperrors.NewNotFound("admin user", nil)
	}
	for otherID, other := range a.s.admins {
		if otherID != id && other.Username == user.Username {
			return apperrors.NewConflict("admin user already exists", map[string]any{"username": user.Username})
		}
	}

	user.ID = id
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	a.s.admins[id] = *user
	return nil
}

func (a *adminUserStore) Delete(_ context.Context, id string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if _, ok := a.s.admins[id]; !ok {
		return apperrors.NewNotFound("admin user", nil)
	}
	delete(a.s.admins, id)
	return nil
}

// doctorUserStore

type doctorUserStore struct{ s *Store }

func (d *doctorUserStore) Create(_ context.Context, user *domain.DoctorUser) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	for _, existing := range d.s.doctors {
		if existing.Username == user.Username || existing.LicenseNumber == user.LicenseNumber {
			return apperrors.NewConflict("doctor user already exists", map[string]any{"username": user.Username})
		}
	}

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	d.s.doctors[user.ID] = *user
	return nil
}

func (d *doctorUserStore) GetByID(_ context.Context, id string) (*domain.DoctorUser, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	user, ok := d.s.doctors[id]
	if !ok {
		return nil, apperrors.NewNotFound("doctor user", nil)
	}
	return &user, nil
}

func (d *doctorUserStore) GetByUsername(_ context.Context, username string) (*domain.DoctorUser, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	for _, user := range d.s.doctors {
		if user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, apperrors.NewNotFound("doctor user", nil)
}

func (d *doctorUserStore) List(_ context.Context, filter repository.ListFilter) ([]domain.DoctorUser, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	users := make([]domain.DoctorUser, 0, len(d.s.doctors))
	for _, user := range d.s.doctors {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return window(users, filter.Limit, filter.Offset), nil
}

func (d *doctorUserStore) Update(_ context.Context, id string, user *domain.DoctorUser) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	existing, ok := d.s.doctors[id]
	if !ok {
		return apperrors.NewNotFound("doctor user", nil)
	}
	for otherID, other := range d.s.doctors {
		if otherID != id && (other.Username == user.Username || other.LicenseNumber == user.LicenseNumber) {
			return apperrors.NewConflict("doctor user already exists", map[string]any{"username": user.Username})
		}
	}

	user.ID = id
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	d.s.doctors[id] = *user
	return nil
}

func (d *doctorUserStore) Delete(_ context.Context, id string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if _, ok := d.s.doctors[id]; !ok {
		return apperrors.NewNotFound("doctor user", nil)
	}
	for _, order := range d.s.orders {
		if order.DoctorID == id {
			return apperrors.NewConflict("doctor user is still referenced", map[string]any{"order_id": order.ID})
		}
	}
	delete(d.s.doctors, id)
	return nil
}

// supplierStore

type supplierStore struct{ s *Store }

func (p *supplierStore) Create(_ context.Context, supplier *domain.Supplier) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	for _, existing := range p.s.suppliers {
		if existing.Name == supplier.Name {
			return apperrors.NewConflict("supplier already exists", map[string]any{"name": supplier.Name})
		}
	}

	now := time.Now().UTC()
	supplier.ID = uuid.NewString()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now
	p.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (p *supplierStore) GetByID(_ context.Context, id string) (*domain.Supplier, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	supplier, ok := p.s.suppliers[id]
	if !ok {
		return nil, apperrors.NewNotFound("supplier", nil)
	}
	return &supplier, nil
}

func (p *supplierStore) List(_ context.Context, filter repository.ListFilter) ([]domain.Supplier, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()

	suppliers := make([]domain.Supplier, 0, len(p.s.suppliers))
	for _, supplier := range p.s.suppliers {
		suppliers = append(suppliers, supplier)
	}
	sort.Slice(suppliers, func(i, j int) bool { return suppliers[i].Name < suppliers[j].Name })
	return window(suppliers, filter.Limit, filter.Offset), nil
}

func (p *supplierStore) Update(_ context.Context, id string, supplier *domain.Supplier) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	existing, ok := p.s.suppliers[id]
	if !ok {
		return apperrors.NewNotFound("supplier", nil)
	}
	for otherID, other := range p.s.suppliers {
		if otherID != id && other.Name == supplier.Name {
			return apperrors.NewConflict("supplier already exists", map[string]any{"name": supplier.Name})
		}
	}

	supplier.ID = id
	supplier.CreatedAt = existing.CreatedAt
	supplier.UpdatedAt = time.Now().UTC()
	p.s.suppliers[id] = *supplier
	return nil
}

func (p *supplierStore) Delete(_ context.Context, id string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.suppliers[id]; !ok {
		return apperrors.NewNotFound("supplier", nil)
	}
	for _, drug := range p.s.drugs {
		if drug.SupplierID == id {
			return apperrors.NewConflict("supplier is still referenced", map[string]any{"drug_id": drug.ID})
		}
	}
	delete(p.s.suppliers, id)
	return nil
}

// drugStore

type drugStore struct{ s *Store }

func (d *drugStore) Create(_ context.Context, drug *domain.Drug) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if _, ok := d.s.suppliers[drug.SupplierID]; !ok {
		return apperrors.NewNotFound("referenced record", map[string]any{"supplier_id": drug.SupplierID})
	}
	for _, existing := range d.s.drugs {
		if existing.Name == drug.Name {
			return apperrors.NewConflict("drug already exists", map[string]any{"name": drug.Name})
		}
	}

	now := time.Now().UTC()
	drug.ID = uuid.NewString()
	drug.CreatedAt = now
	drug.UpdatedAt = now
	d.s.drugs[drug.ID] = *drug
	return nil
}

func (d *drugStore) GetByID(_ context.Context, id string) (*domain.Drug, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	drug, ok := d.s.drugs[id]
	if !ok {
		return nil, apperrors.NewNotFound("drug", nil)
	}
	return &drug, nil
}

func (d *drugStore) List(_ context.Context, filter repository.DrugFilter) ([]domain.Drug, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	drugs := []domain.Drug{}
	for _, drug := range d.s.drugs {
		if filter.Name != nil && *filter.Name != "" && !containsFold(drug.Name, *filter.Name) {
			continue
		}
		if filter.SupplierID != nil && *filter.SupplierID != "" && drug.SupplierID != *filter.SupplierID {
			continue
		}
		drugs = append(drugs, drug)
	}
	sort.Slice(drugs, func(i, j int) bool { return drugs[i].Name < drugs[j].Name })
	return window(drugs, filter.Limit, filter.Offset), nil
}

func (d *drugStore) Update(_ context.Context, id string, drug *domain.Drug) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	existing, ok := d.s.drugs[id]
	if !ok {
		return apperrors.NewNotFound("drug", nil)
	}
	if _, ok := d.s.suppliers[drug.SupplierID]; !ok {
		return apperrors.NewNotFound("referenced record", map[string]any{"supplier_id": drug.SupplierID})
	}
	for otherID, other := range d.s.drugs {
		if otherID != id && other.Name == drug.Name {
			return apperrors.NewConflict("drug already exists", map[string]any{"name": drug.Name})
		}
	}

	drug.ID = id
	drug.CreatedAt = existing.CreatedAt
	drug.UpdatedAt = time.Now().UTC()
	d.s.drugs[id] = *drug
	return nil
}

func (d *drugStore) Delete(_ context.Context, id string) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if _, ok := d.s.drugs[id]; !ok {
		return apperrors.NewNotFound("drug", nil)
	}
	for _, order := range d.s.orders {
		if order.DrugID == id {
			return apperrors.NewConflict("drug is still referenced", map[string]any{"order_id": order.ID})
		}
	}
	delete(d.s.drugs, id)
	return nil
}

// orderStore

type orderStore struct{ s *Store }

func (o *orderStore) Create(_ context.Context, order *domain.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	if _, ok := o.s.doctors[order.DoctorID]; !ok {
		return apperrors.NewNotFound("referenced record", map[string]any{"doctor_id": order.DoctorID})
	}
	drug, ok := o.s.drugs[order.DrugID]
	if !ok {
		return apperrors.NewNotFound("drug", nil)
	}
	if drug.Stock < order.Quantity {
		return apperrors.NewConflict("insufficient stock", map[string]any{
			"drug_id":   order.DrugID,
			"available": drug.Stock,
			"requested": order.Quantity,
		})
	}

	drug.Stock -= order.Quantity
	drug.UpdatedAt = time.Now().UTC()
	o.s.drugs[drug.ID] = drug

	now := time.Now().UTC()
	order.ID = uuid.NewString()
	order.TotalPrice = float64(order.Quantity) * order.UnitPrice
	order.PlacedAt = now
	order.UpdatedAt = now
	o.s.orders[order.ID] = *order
	return nil
}

func (o *orderStore) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	order, ok := o.s.orders[id]
	if !ok {
		return nil, apperrors.NewNotFound("order", nil)
	}
	return &order, nil
}

func (o *orderStore) List(_ context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	o.s.mu.RLock()
	defer o.s.mu.RUnlock()

	orders := []domain.Order{}
	for _, order := range o.s.orders {
		if filter.DoctorID != nil && *filter.DoctorID != "" && order.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.DrugID != nil && *filter.DrugID != "" && order.DrugID != *filter.DrugID {
			continue
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].PlacedAt.After(orders[j].PlacedAt) })
	return window(orders, filter.Limit, filter.Offset), nil
}

func (o *orderStore) Update(_ context.Context, id string, order *domain.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	existing, ok := o.s.orders[id]
	if !ok {
		return apperrors.NewNotFound("order", nil)
	}
	if existing.DrugID != order.DrugID {
		return apperrors.NewConflict("order drug cannot change", map[string]any{"order_id": id})
	}
	if _, ok := o.s.doctors[order.DoctorID]; !ok {
		return apperrors.NewNotFound("referenced record", map[string]any{"doctor_id": order.DoctorID})
	}
	drug, ok := o.s.drugs[order.DrugID]
	if !ok {
		return apperrors.NewNotFound("drug", nil)
	}

	available := drug.Stock + existing.Quantity
	if available < order.Quantity {
		return apperrors.NewConflict("insufficient stock", map[string]any{
			"drug_id":   order.DrugID,
			"available": available,
			"requested": order.Quantity,
		})
	}

	drug.Stock = available - order.Quantity
	drug.UpdatedAt = time.Now().UTC()
	o.s.drugs[drug.ID] = drug

	order.ID = id
	order.TotalPrice = float64(order.Quantity) * order.UnitPrice
	order.PlacedAt = existing.PlacedAt
	order.UpdatedAt = time.Now().UTC()
	o.s.orders[id] = *order
	return nil
}

func (o *orderStore) Delete(_ context.Context, id string) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	order, ok := o.s.orders[id]
	if !ok {
		return apperrors.NewNotFound("order", nil)
	}
	if drug, ok := o.s.drugs[order.DrugID]; ok {
		drug.Stock += order.Quantity
		drug.UpdatedAt = time.Now().UTC()
		o.s.drugs[drug.ID] = drug
	}
	delete(o.s.orders, id)
	return nil
}

// salesReportStore

type salesReportStore struct{ s *Store }

func (r *salesReportStore) Create(_ context.Context, report *domain.SalesReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	report.ID = uuid.NewString()
	report.GeneratedAt = now
	report.UpdatedAt = now
	r.s.reports[report.ID] = *report
	return nil
}

func (r *salesReportStore) GetByID(_ context.Context, id string) (*domain.SalesReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	report, ok := r.s.reports[id]
	if !ok {
		return nil, apperrors.NewNotFound("sales report", nil)
	}
	return &report, nil
}

func (r *salesReportStore) List(_ context.Context, filter repository.ListFilter) ([]domain.SalesReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reports := make([]domain.SalesReport, 0, len(r.s.reports))
	for _, report := range r.s.reports {
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].PeriodStart.After(reports[j].PeriodStart) })
	return window(reports, filter.Limit, filter.Offset), nil
}

func (r *salesReportStore) Update(_ context.Context, id string, report *domain.SalesReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.reports[id]
	if !ok {
		return apperrors.NewNotFound("sales report", nil)
	}

	report.ID = id
	report.GeneratedAt = existing.GeneratedAt
	report.UpdatedAt = time.Now().UTC()
	r.s.reports[id] = *report
	return nil
}

func (r *salesReportStore) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reports[id]; !ok {
		return apperrors.NewNotFound("sales report", nil)
	}
	delete(r.s.reports, id)
	return nil
}
