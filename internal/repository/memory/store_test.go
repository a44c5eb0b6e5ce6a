package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

func seedSupplier(t *testing.T, store *Store, name string) *domain.Supplier {
	t.Helper()
	supplier := &domain.Supplier{Name: name, Email: name + "@example.com"}
	require.NoError(t, store.Suppliers().Create(context.Background(), supplier))
	return supplier
}

func seedDoctor(t *testing.T, store *Store, username, license string) *domain.DoctorUser {
	t.Helper()
	doctor := &domain.DoctorUser{
		Username:      username,
		Email:         username + "@example.com",
		LicenseNumber: license,
		PasswordHash:  "irrelevant",
	}
	require.NoError(t, store.DoctorUsers().Create(context.Background(), doctor))
	return doctor
}

func seedDrug(t *testing.T, store *Store, name, supplierID string, stock int) *domain.Drug {
	t.Helper()
	drug := &domain.Drug{Name: name, Price: 2.50, Stock: stock, SupplierID: supplierID}
	require.NoError(t, store.Drugs().Create(context.Background(), drug))
	return drug
}

func TestAdminUserCRUD(t *testing.T) {
	ctx := context.Background()
	admins := NewStore().AdminUsers()

	admin := &domain.AdminUser{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	require.NoError(t, admins.Create(ctx, admin))
	require.NotEmpty(t, admin.ID)

	byID, err := admins.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := admins.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byName.ID)

	updated := &domain.AdminUser{Username: "alice2", Email: "alice2@example.com", PasswordHash: "h"}
	require.NoError(t, admins.Update(ctx, admin.ID, updated))
	assert.Equal(t, admin.ID, updated.ID)
	assert.Equal(t, admin.CreatedAt, updated.CreatedAt)
	// Updates hand back timestamps just like creates do.
	assert.False(t, updated.UpdatedAt.IsZero())

	require.NoError(t, admins.Delete(ctx, admin.ID))
	_, err = admins.GetByID(ctx, admin.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteTwiceReportsNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	supplier := seedSupplier(t, store, "Medico")

	require.NoError(t, store.Suppliers().Delete(ctx, supplier.ID))

	err := store.Suppliers().Delete(ctx, supplier.ID)
	assert.True(t, apperrors.IsNotFound(err))
	_, err = store.Suppliers().GetByID(ctx, supplier.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDuplicateSupplierNameConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	original := seedSupplier(t, store, "Medico")

	dup := &domain.Supplier{Name: "Medico", Email: "other@example.com"}
	err := store.Suppliers().Create(ctx, dup)
	assert.True(t, apperrors.IsConflict(err))

	// The stored record is untouched by the failed create.
	kept, err := store.Suppliers().GetByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Medico@example.com", kept.Email)
}

func TestDrugCreateRequiresSupplier(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	drug := &domain.Drug{Name: "Aspirin", Price: 1, Stock: 5, SupplierID: "missing"}
	err := store.Drugs().Create(ctx, drug)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSupplierDeleteStillReferenced(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	supplier := seedSupplier(t, store, "Medico")
	seedDrug(t, store, "Aspirin", supplier.ID, 5)

	err := store.Suppliers().Delete(ctx, supplier.ID)
	assert.True(t, apperrors.IsConflict(err))

	_, err = store.Suppliers().GetByID(ctx, supplier.ID)
	assert.NoError(t, err)
}

func TestOrderReservesStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	supplier := seedSupplier(t, store, "Medico")
	doctor := seedDoctor(t, store, "drbob", "AB-12345")
	drug := seedDrug(t, store, "Aspirin", supplier.ID, 10)

	order := &domain.Order{DrugID: drug.ID, DoctorID: doctor.ID, Quantity: 4, UnitPrice: 2.5}
	require.NoError(t, store.Orders().Create(ctx, order))
	assert.Equal(t, 10.0, order.TotalPrice)
	assert.False(t, order.PlacedAt.IsZero())

	after, err := store.Drugs().GetByID(ctx, drug.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, after.Stock)
}

func TestOrderInsufficientStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	supplier := seedSupplier(t, store, "Medico")
	doctor := seedDoctor(t, store, "drbob", "AB-12345")
	drug := seedDrug(t, store, "Aspirin", supplier.ID, 3)

	order := &domain.Order{DrugID: drug.ID, DoctorID: doctor.ID, Quantity: 5, UnitPrice: 2.5}
	err := store.Orders().Create(ctx, order)
	require.True(t, apperrors.IsConflict(err))

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 3, domainErr.Details["available"])
	assert.Equal(t, 5, domainErr.Details["requested"])

	after, err := store.Drugs().GetByID(ctx, drug.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Stock)
}

func TestOrderUnknownDoctor(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	supplier := seedSupplier(t, store, "Medico")
	drug := seedDrug(t, store, "Aspirin", supplier.ID, 10)

	order := &domain.Order{DrugID: drug.ID, DoctorID: "missing", Quantity: 1, UnitPrice: 1}
	err := store.Orders().Create(ctx, order)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestOrderDeleteRestoresStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	supplier := seedSupplier(t, store, "Medico")
	doctor := seedDoctor(t, store, "drbob", "AB-12345")
	drug := seedDrug(t, store, "Aspirin", supplier.ID, 10)

	order := &domain.Order{DrugID: drug.ID, DoctorID: doctor.ID, Quantity: 4, UnitPrice: 2.5}
	require.NoError(t, store.Orders().Create(ctx, order))
	require.NoError(t, store.Orders().Delete(ctx, order.ID))

	after, err := store.Drugs().GetByID(ctx, drug.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, after.Stock)
}

func TestOrderUpdateReReservesStock(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	supplier := seedSupplier(t, store, "Medico")
	doctor := seedDoctor(t, store, "drbob", "AB-12345")
	drug := seedDrug(t, store, "Aspirin", supplier.ID, 10)

	order := &domain.Order{DrugID: drug.ID, DoctorID: doctor.ID, Quantity: 4, UnitPrice: 2.5}
	require.NoError(t, store.Orders().Create(ctx, order))

	replacement := &domain.Order{DrugID: drug.ID, DoctorID: doctor.ID, Quantity: 7, UnitPrice: 2.5}
	require.NoError(t, store.Orders().Update(ctx, order.ID, replacement))

	after, err := store.Drugs().GetByID(ctx, drug.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.Stock)

	// Reducing the quantity returns the difference to stock.
	smaller := &domain.Order{DrugID: drug.ID, DoctorID: doctor.ID, Quantity: 2, UnitPrice: 2.5}
	require.NoError(t, store.Orders().Update(ctx, order.ID, smaller))
	after, err = store.Drugs().GetByID(ctx, drug.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, after.Stock)
}

func TestOrderUpdateCannotChangeDrug(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	supplier := seedSupplier(t, store, "Medico")
	doctor := seedDoctor(t, store, "drbob", "AB-12345")
	drugA := seedDrug(t, store, "Aspirin", supplier.ID, 10)
	drugB := seedDrug(t, store, "Ibuprofen", supplier.ID, 10)

	order := &domain.Order{DrugID: drugA.ID, DoctorID: doctor.ID, Quantity: 1, UnitPrice: 1}
	require.NoError(t, store.Orders().Create(ctx, order))

	swapped := &domain.Order{DrugID: drugB.ID, DoctorID: doctor.ID, Quantity: 1, UnitPrice: 1}
	err := store.Orders().Update(ctx, order.ID, swapped)
	assert.True(t, apperrors.IsConflict(err))
}

func TestSupplierListPagination(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	for i := 0; i < 5; i++ {
		seedSupplier(t, store, fmt.Sprintf("Supplier-%d", i))
	}

	page, err := store.Suppliers().List(ctx, repository.ListFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Supplier-1", page[0].Name)
	assert.Equal(t, "Supplier-2", page[1].Name)

	// The same query yields the same page again.
	again, err := store.Suppliers().List(ctx, repository.ListFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, page, again)

	tail, err := store.Suppliers().List(ctx, repository.ListFilter{Limit: 10, Offset: 4})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "Supplier-4", tail[0].Name)
}

func TestDrugListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	supplierA := seedSupplier(t, store, "Medico")
	supplierB := seedSupplier(t, store, "Pharma")
	seedDrug(t, store, "Aspirin", supplierA.ID, 10)
	seedDrug(t, store, "Ibuprofen", supplierB.ID, 10)

	name := "aspi"
	byName, err := store.Drugs().List(ctx, repository.DrugFilter{Name: &name})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Aspirin", byName[0].Name)

	bySupplier, err := store.Drugs().List(ctx, repository.DrugFilter{SupplierID: &supplierB.ID})
	require.NoError(t, err)
	require.Len(t, bySupplier, 1)
	assert.Equal(t, "Ibuprofen", bySupplier[0].Name)
}

func TestDoctorDuplicateLicenseConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedDoctor(t, store, "drbob", "AB-12345")

	dup := &domain.DoctorUser{Username: "drjane", Email: "j@example.com", LicenseNumber: "AB-12345"}
	err := store.DoctorUsers().Create(ctx, dup)
	assert.True(t, apperrors.IsConflict(err))
}

func TestSalesReportRoundTrip(t *testing.T) {
	ctx := context.Background()
	reports := NewStore().SalesReports()

	report := &domain.SalesReport{TotalOrders: 12, TotalRevenue: 99.90}
	require.NoError(t, reports.Create(ctx, report))
	require.NotEmpty(t, report.ID)
	assert.False(t, report.GeneratedAt.IsZero())

	fetched, err := reports.GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, fetched.TotalOrders)

	require.NoError(t, reports.Delete(ctx, report.ID))
	_, err = reports.GetByID(ctx, report.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
