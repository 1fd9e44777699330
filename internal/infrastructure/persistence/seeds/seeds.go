// Package seeds loads initial reference data (console users, vendors and
// their catalogs) from a YAML file. Loading is idempotent so the seed
// command can run against a non-empty database.
package seeds

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"fitout/internal/domain/product"
	"fitout/internal/domain/user"
	"fitout/internal/domain/vendor"
	"fitout/internal/shared/authorization"
	apperrors "fitout/internal/shared/errors"
	"fitout/internal/shared/logger"
)

type UserSeed struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type ProductSeed struct {
	Name           string `yaml:"name"`
	SKU            string `yaml:"sku"`
	Category       string `yaml:"category"`
	UnitPriceCents int64  `yaml:"unit_price_cents"`
	Currency       string `yaml:"currency"`
	LeadTimeDays   int    `yaml:"lead_time_days"`
}

type VendorSeed struct {
	CompanyName string        `yaml:"company_name"`
	ContactName string        `yaml:"contact_name"`
	Email       string        `yaml:"email"`
	Phone       string        `yaml:"phone"`
	Categories  []string      `yaml:"categories"`
	Products    []ProductSeed `yaml:"products"`
}

type SeedFile struct {
	Users   []UserSeed   `yaml:"users"`
	Vendors []VendorSeed `yaml:"vendors"`
}

// Parse reads a seed file. Unknown YAML keys are rejected so a typo in a
// seed file fails loudly instead of silently skipping data.
func Parse(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file SeedFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &file, nil
}

// ParseFile reads a seed file from disk.
func ParseFile(path string) (*SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// UserCreator creates console users. The user application service
// implements it.
type UserCreator interface {
	Create(ctx context.Context, email, name, password string, role authorization.UserRole) (*user.User, error)
}

// VendorCatalog covers the vendor operations the loader needs.
type VendorCatalog interface {
	Create(ctx context.Context, companyName, contactName, email, phone string, categories []string) (*vendor.Vendor, error)
	List(ctx context.Context, filter vendor.Filter) ([]*vendor.Vendor, int64, error)
}

// ProductCatalog covers the product operations the loader needs.
type ProductCatalog interface {
	Create(ctx context.Context, vendorSID, name, sku, category string, unitPrice int64, currency string, leadTimeDays int) (*product.Product, error)
	List(ctx context.Context, filter product.Filter) ([]*product.Product, int64, error)
}

type Loader struct {
	users    UserCreator
	vendors  VendorCatalog
	products ProductCatalog
	logger   logger.Interface
}

func NewLoader(users UserCreator, vendors VendorCatalog, products ProductCatalog, log logger.Interface) *Loader {
	return &Loader{
		users:    users,
		vendors:  vendors,
		products: products,
		logger:   log.Named("seeds"),
	}
}

// Result reports what the loader created and what it skipped as already
// present.
type Result struct {
	UsersCreated    int
	UsersSkipped    int
	VendorsCreated  int
	VendorsSkipped  int
	ProductsCreated int
	ProductsSkipped int
}

// Apply loads the seed file into the database. Existing users (by email),
// vendors (by email) and products (by SKU per vendor) are skipped.
func (l *Loader) Apply(ctx context.Context, file *SeedFile) (*Result, error) {
	result := &Result{}

	for _, seed := range file.Users {
		role := authorization.UserRole(seed.Role)
		if !role.IsValid() {
			return result, fmt.Errorf("user %s: invalid role %q", seed.Email, seed.Role)
		}

		if _, err := l.users.Create(ctx, seed.Email, seed.Name, seed.Password, role); err != nil {
			if apperrors.IsConflictError(err) {
				l.logger.Debugw("seed user already exists", "email", seed.Email)
				result.UsersSkipped++
				continue
			}
			return result, fmt.Errorf("user %s: %w", seed.Email, err)
		}
		result.UsersCreated++
	}

	for _, seed := range file.Vendors {
		vnd, created, err := l.ensureVendor(ctx, seed)
		if err != nil {
			return result, fmt.Errorf("vendor %s: %w", seed.CompanyName, err)
		}
		if created {
			result.VendorsCreated++
		} else {
			result.VendorsSkipped++
		}

		for _, p := range seed.Products {
			created, err := l.ensureProduct(ctx, vnd, p)
			if err != nil {
				return result, fmt.Errorf("vendor %s product %s: %w", seed.CompanyName, p.SKU, err)
			}
			if created {
				result.ProductsCreated++
			} else {
				result.ProductsSkipped++
			}
		}
	}

	l.logger.Infow("seed data applied",
		"users_created", result.UsersCreated,
		"vendors_created", result.VendorsCreated,
		"products_created", result.ProductsCreated,
	)
	return result, nil
}

func (l *Loader) ensureVendor(ctx context.Context, seed VendorSeed) (*vendor.Vendor, bool, error) {
	existing, _, err := l.vendors.List(ctx, vendor.Filter{Search: seed.Email, PageSize: 10, Page: 1})
	if err != nil {
		return nil, false, err
	}
	for _, v := range existing {
		if v.Email() == seed.Email {
			return v, false, nil
		}
	}

	vnd, err := l.vendors.Create(ctx, seed.CompanyName, seed.ContactName, seed.Email, seed.Phone, seed.Categories)
	if err != nil {
		return nil, false, err
	}
	return vnd, true, nil
}

func (l *Loader) ensureProduct(ctx context.Context, vnd *vendor.Vendor, seed ProductSeed) (bool, error) {
	vendorID := vnd.ID()
	existing, _, err := l.products.List(ctx, product.Filter{VendorID: &vendorID, Search: seed.SKU, PageSize: 10, Page: 1})
	if err != nil {
		return false, err
	}
	for _, p := range existing {
		if p.SKU() == seed.SKU {
			return false, nil
		}
	}

	if _, err := l.products.Create(ctx, vnd.SID(), seed.Name, seed.SKU, seed.Category, seed.UnitPriceCents, seed.Currency, seed.LeadTimeDays); err != nil {
		return false, err
	}
	return true, nil
}
