// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"vendorgate/internal/core/apperror"
	appctx "vendorgate/internal/core/context"
	"vendorgate/internal/core/id"
	"vendorgate/internal/core/types"
	"vendorgate/internal/domain/auth"
	"vendorgate/internal/domain/catalogs/product"
	"vendorgate/internal/domain/catalogs/vendor"
	"vendorgate/internal/domain/pricing"
	"vendorgate/internal/infrastructure/storage/postgres"
	"vendorgate/internal/infrastructure/storage/postgres/auth_repo"
	"vendorgate/internal/infrastructure/storage/postgres/catalog_repo"
	"vendorgate/internal/infrastructure/storage/postgres/pricing_repo"
	"vendorgate/pkg/logger"
	"vendorgate/pkg/numerator"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	distributorID := resolveDistributorID(log)

	userRepo := auth_repo.NewUserRepo(txManager)
	authService := auth.NewService(userRepo, auth.NewJWTService("seed-only", 0))

	if err := seedAdminUser(ctx, authService, distributorID, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, pool, authService, distributorID, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func resolveDistributorID(log *logger.Logger) id.ID {
	if raw := os.Getenv("DISTRIBUTOR_ID"); raw != "" {
		parsed, err := id.Parse(raw)
		if err != nil {
			log.Fatalw("invalid DISTRIBUTOR_ID", "error", err)
		}
		return parsed
	}
	generated := id.New()
	log.Infow("generated distributor id", "distributor_id", generated)
	return generated
}

func seedAdminUser(ctx context.Context, authService *auth.Service, distributorID id.ID, log *logger.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@vendorgate.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	admin := auth.NewUser(distributorID, email, appctx.RoleDistributor)
	admin.IsAdmin = true

	err := authService.Register(ctx, admin, password)
	if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeDuplicate {
		log.Infow("admin user already exists", "email", email)
		return nil
	}
	if err != nil {
		return err
	}

	log.Infow("admin user created", "email", email, "user_id", admin.ID)
	return nil
}

func seedDemoData(ctx context.Context, txManager *postgres.TxManager, pool *postgres.Pool, authService *auth.Service, distributorID id.ID, log *logger.Logger) error {
	gen := numerator.New(pool)

	productService := product.NewService(catalog_repo.NewProductRepo(txManager), gen)
	vendorService := vendor.NewService(catalog_repo.NewVendorRepo(txManager), gen)
	pricingService := pricing.NewService(pricing_repo.NewOverrideRepo(txManager))

	// Demo vendor
	demoVendor := vendor.NewVendor(distributorID, "VEND-DEMO", "Corner Market")
	email := "orders@cornermarket.example"
	demoVendor.Email = &email
	if err := vendorService.Create(ctx, demoVendor); err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeDuplicate {
			log.Info("demo vendor already exists, skipping demo data")
			return nil
		}
		return err
	}

	// Fully priced product
	cola := product.NewProduct(distributorID, "PRD-COLA", "Cola 12oz")
	cola.Category = "Beverages"
	cola.SellUnitPrice = types.SomeMoney(types.MustMoney("1.25"))
	cola.SellCasePrice = types.SomeMoney(types.MustMoney("28.00"))
	cola.UnitsPerCase = 24
	cola.AllowCase = true
	if err := productService.Create(ctx, cola); err != nil {
		return err
	}

	// Legacy-priced product: only the old columns carry values, the way
	// rows imported from the previous system look.
	chips := product.NewProduct(distributorID, "PRD-CHIPS", "Potato Chips 1oz")
	chips.Category = "Snacks"
	chips.LegacyUnitPrice = types.SomeMoney(types.MustMoney("0.75"))
	chips.LegacyCasePrice = types.SomeMoney(types.MustMoney("32.50"))
	chips.UnitsPerCase = 50
	chips.AllowCase = true
	if err := productService.Create(ctx, chips); err != nil {
		return err
	}

	// Unpriced product: browsing shows no price, ordering it is refused.
	seltzer := product.NewProduct(distributorID, "PRD-SELTZER", "Seltzer 16oz")
	seltzer.Category = "Beverages"
	seltzer.UnitsPerCase = 12
	if err := productService.Create(ctx, seltzer); err != nil {
		return err
	}

	// Vendor-specific case price for the demo vendor
	if err := pricingService.SetVendorOverride(ctx, &pricing.VendorPriceOverride{
		DistributorID: distributorID,
		VendorID:      demoVendor.ID,
		ProductID:     cola.ID,
		CasePrice:     types.SomeMoney(types.MustMoney("26.50")),
	}); err != nil {
		return err
	}

	// Vendor portal login
	vendorUser := auth.NewUser(distributorID, "buyer@cornermarket.example", appctx.RoleVendor)
	vendorUser.VendorID = &demoVendor.ID
	if err := authService.Register(ctx, vendorUser, "Vendor123!"); err != nil {
		return err
	}

	log.Infow("demo data created",
		"vendor_id", demoVendor.ID,
		"products", 3,
	)
	return nil
}
