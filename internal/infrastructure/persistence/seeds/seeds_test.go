package seeds

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/domain/product"
	"fitout/internal/domain/user"
	"fitout/internal/domain/vendor"
	"fitout/internal/shared/authorization"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

const sampleSeed = `
users:
  - email: admin@fitout.local
    name: Admin
    password: change-me-please
    role: admin

vendors:
  - company_name: Nordic Joinery
    contact_name: Mika Tanner
    email: mika@nordicjoinery.test
    phone: "+358 40 1234567"
    categories: [carpentry]
    products:
      - name: Oak cabinet
        sku: NJ-CAB-OAK-120
        category: cabinets
        unit_price_cents: 84900
        currency: EUR
        lead_time_days: 21
`

type mockUserCreator struct {
	created []string
	err     error
}

func (m *mockUserCreator) Create(_ context.Context, email, name, password string, role authorization.UserRole) (*user.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, email)
	return nil, nil
}

type mockVendorCatalog struct {
	existing []*vendor.Vendor
	created  []string
}

func (m *mockVendorCatalog) Create(_ context.Context, companyName, contactName, email, phone string, categories []string) (*vendor.Vendor, error) {
	m.created = append(m.created, companyName)
	v, err := vendor.NewVendor(companyName, contactName, email, phone, categories)
	if err != nil {
		return nil, err
	}
	if err := v.SetID(uint(len(m.created))); err != nil {
		return nil, err
	}
	if err := v.SetSID("vnd_seed00000001"); err != nil {
		return nil, err
	}
	return v, nil
}

func (m *mockVendorCatalog) List(_ context.Context, filter vendor.Filter) ([]*vendor.Vendor, int64, error) {
	var matched []*vendor.Vendor
	for _, v := range m.existing {
		if filter.Search == "" || strings.Contains(v.Email(), filter.Search) {
			matched = append(matched, v)
		}
	}
	return matched, int64(len(matched)), nil
}

type mockProductCatalog struct {
	existing []*product.Product
	created  []string
}

func (m *mockProductCatalog) Create(_ context.Context, vendorSID, name, sku, category string, unitPrice int64, currency string, leadTimeDays int) (*product.Product, error) {
	m.created = append(m.created, sku)
	return nil, nil
}

func (m *mockProductCatalog) List(_ context.Context, filter product.Filter) ([]*product.Product, int64, error) {
	var matched []*product.Product
	for _, p := range m.existing {
		if filter.Search == "" || strings.Contains(p.SKU(), filter.Search) {
			matched = append(matched, p)
		}
	}
	return matched, int64(len(matched)), nil
}

func seededVendor(t *testing.T) *vendor.Vendor {
	t.Helper()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	v, err := vendor.ReconstructVendor(
		1, "vnd_seed00000001", "Nordic Joinery", "Mika Tanner",
		"mika@nordicjoinery.test", "+358 40 1234567",
		[]string{"carpentry"}, 0, true, now, now,
	)
	require.NoError(t, err)
	return v
}

func TestParse(t *testing.T) {
	file, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	require.Len(t, file.Users, 1)
	assert.Equal(t, "admin@fitout.local", file.Users[0].Email)
	require.Len(t, file.Vendors, 1)
	require.Len(t, file.Vendors[0].Products, 1)
	assert.Equal(t, "NJ-CAB-OAK-120", file.Vendors[0].Products[0].SKU)
	assert.EqualValues(t, 84900, file.Vendors[0].Products[0].UnitPriceCents)
}

func TestParse_UnknownFieldRejected(t *testing.T) {
	_, err := Parse(strings.NewReader("users:\n  - emial: typo@fitout.local\n"))
	require.Error(t, err)
}

func TestLoader_Apply_FreshDatabase(t *testing.T) {
	users := &mockUserCreator{}
	vendors := &mockVendorCatalog{}
	products := &mockProductCatalog{}
	loader := NewLoader(users, vendors, products, logger.NewLogger())

	file, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	result, err := loader.Apply(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, result.UsersCreated)
	assert.Equal(t, 1, result.VendorsCreated)
	assert.Equal(t, 1, result.ProductsCreated)
	assert.Equal(t, []string{"admin@fitout.local"}, users.created)
	assert.Equal(t, []string{"Nordic Joinery"}, vendors.created)
	assert.Equal(t, []string{"NJ-CAB-OAK-120"}, products.created)
}

func TestLoader_Apply_SkipsExisting(t *testing.T) {
	users := &mockUserCreator{err: apperrors.NewConflictError("email already registered")}
	vendors := &mockVendorCatalog{existing: []*vendor.Vendor{seededVendor(t)}}

	existingProduct, err := product.NewProduct(1, "Oak cabinet", "NJ-CAB-OAK-120", "cabinets", 84900, "EUR", 21)
	require.NoError(t, err)
	products := &mockProductCatalog{existing: []*product.Product{existingProduct}}

	loader := NewLoader(users, vendors, products, logger.NewLogger())

	file, err := Parse(strings.NewReader(sampleSeed))
	require.NoError(t, err)

	result, err := loader.Apply(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, 1, result.UsersSkipped)
	assert.Equal(t, 1, result.VendorsSkipped)
	assert.Equal(t, 1, result.ProductsSkipped)
	assert.Empty(t, vendors.created)
	assert.Empty(t, products.created)
}

func TestLoader_Apply_InvalidRole(t *testing.T) {
	loader := NewLoader(&mockUserCreator{}, &mockVendorCatalog{}, &mockProductCatalog{}, logger.NewLogger())

	file := &SeedFile{Users: []UserSeed{{Email: "x@fitout.local", Name: "X", Password: "pw12345678", Role: "superuser"}}}

	_, err := loader.Apply(context.Background(), file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}
