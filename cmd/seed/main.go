// Command seed provisions the initial admin user and, when requested,
// a small set of demo catalog data for local development.
//
// Environment:
//
//	DATABASE_URL    connection string (required)
//	ADMIN_USERNAME  admin login, default "admin"
//	ADMIN_EMAIL     admin email, default "admin@faktura.local"
//	ADMIN_PASSWORD  admin password, default "admin12345" (change it)
//	SEED_DEMO_DATA  "true" to seed demo customers, suppliers, products and accounts
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"faktura/internal/core/id"
	"faktura/internal/core/types"
	"faktura/internal/domain/catalogs/account"
	"faktura/internal/domain/catalogs/customer"
	"faktura/internal/domain/catalogs/product"
	"faktura/internal/domain/catalogs/supplier"
	"faktura/internal/infrastructure/storage/postgres"
	"faktura/internal/infrastructure/storage/postgres/catalog_repo"
	"faktura/pkg/logger"
	"faktura/pkg/numerator"
)

func main() {
	ctx := context.Background()

	log, err := logger.New(logger.Config{Level: getEnv("LOG_LEVEL", "info"), Component: "seed"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatalw("DATABASE_URL is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("connect database", "error", err)
	}
	defer pool.Close()

	adminID, err := seedAdminUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("seed admin user", "error", err)
	}

	if getEnv("SEED_DEMO_DATA", "false") == "true" {
		if err := seedDemoData(ctx, pool, log, adminID); err != nil {
			log.Fatalw("seed demo data", "error", err)
		}
	}

	log.Info("seeding complete")
}

// seedAdminUser creates the administrator account if it does not exist yet
// and returns its id either way.
func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminUsername := getEnv("ADMIN_USERNAME", "admin")
	adminEmail := getEnv("ADMIN_EMAIL", "admin@faktura.local")
	adminPassword := getEnv("ADMIN_PASSWORD", "admin12345")

	if os.Getenv("ADMIN_PASSWORD") == "" {
		log.Warnw("ADMIN_PASSWORD not set, using the default; change it before exposing the service")
	}

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (
			id, username, email, password_hash, is_active, is_admin,
			created_at, updated_at, version
		) VALUES ($1, $2, $3, $4, true, true, $5, $5, 1)
	`, userID, adminUsername, adminEmail, string(passwordHash), now)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "username", adminUsername, "email", adminEmail, "user_id", userID)
	return userID, nil
}

// seedDemoData fills the catalogs of the admin owner with sample data.
// It goes through the regular services so codes come from the numerator
// and the usual validation applies. Runs only against an empty catalog.
func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, adminID id.ID) error {
	ownerID := adminID.String()

	var existing int
	err := pool.Pool.QueryRow(ctx,
		`SELECT count(*) FROM cat_customers WHERE owner_id = $1`,
		ownerID,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check demo data: %w", err)
	}
	if existing > 0 {
		log.Infow("demo data already present, skipping", "owner_id", ownerID)
		return nil
	}

	log.Info("seeding demo data...")

	txManager := postgres.NewTxManager(pool)
	gen := numerator.New(pool)

	customers := customer.NewService(catalog_repo.NewCustomerRepo(txManager), gen, txManager)
	suppliers := supplier.NewService(catalog_repo.NewSupplierRepo(txManager), gen, txManager)
	products := product.NewService(catalog_repo.NewProductRepo(txManager), gen, txManager)
	accounts := account.NewService(catalog_repo.NewAccountRepo(txManager), gen, txManager)

	demoCustomers := []*customer.Customer{
		newDemoCustomer(ownerID, "Acme Trading Ltd", "acme@example.com", "HR11111111111"),
		newDemoCustomer(ownerID, "Blue Harbor d.o.o.", "office@blueharbor.example", "HR22222222222"),
		newDemoCustomer(ownerID, "Cedar Consulting", "hello@cedar.example", ""),
	}
	for _, c := range demoCustomers {
		if err := customers.Create(ctx, c); err != nil {
			return fmt.Errorf("seed customer %q: %w", c.Name, err)
		}
	}

	demoSuppliers := []*supplier.Supplier{
		newDemoSupplier(ownerID, "Nordic Paper Supplies", "sales@nordicpaper.example"),
		newDemoSupplier(ownerID, "Delta Hardware", "orders@deltahw.example"),
	}
	for _, s := range demoSuppliers {
		if err := suppliers.Create(ctx, s); err != nil {
			return fmt.Errorf("seed supplier %q: %w", s.Name, err)
		}
	}

	demoProducts := []*product.Product{
		newDemoProduct(ownerID, "Consulting hour", "h", 80, 25, false),
		newDemoProduct(ownerID, "Office paper A4", "pack", 4.5, 25, true),
		newDemoProduct(ownerID, "Laptop stand", "pcs", 35, 25, true),
		newDemoProduct(ownerID, "Software license, annual", "pcs", 240, 25, false),
	}
	for _, p := range demoProducts {
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}

	demoAccounts := []*account.Account{
		account.New(ownerID, "", "Main bank account", account.TypeBank, "EUR"),
		account.New(ownerID, "", "Petty cash", account.TypeCash, "EUR"),
	}
	for _, a := range demoAccounts {
		if err := accounts.Create(ctx, a); err != nil {
			return fmt.Errorf("seed account %q: %w", a.Name, err)
		}
	}

	log.Infow("demo data seeded",
		"customers", len(demoCustomers),
		"suppliers", len(demoSuppliers),
		"products", len(demoProducts),
		"accounts", len(demoAccounts),
	)
	return nil
}

func newDemoCustomer(ownerID, name, email, taxID string) *customer.Customer {
	c := customer.New(ownerID, "", name)
	c.Email = email
	c.TaxID = taxID
	return c
}

func newDemoSupplier(ownerID, name, email string) *supplier.Supplier {
	s := supplier.New(ownerID, "", name)
	s.Email = email
	return s
}

func newDemoProduct(ownerID, name, unit string, price, vatRate float64, trackStock bool) *product.Product {
	p := product.New(ownerID, "", name, unit)
	p.Price = types.NewMoney(price)
	p.VATRate = types.NewMoney(vatRate)
	p.TrackStock = trackStock
	return p
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
