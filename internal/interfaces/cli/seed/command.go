// Package seed implements the database seeding command.
package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	productapp "fitout/internal/application/product"
	userapp "fitout/internal/application/user"
	vendorapp "fitout/internal/application/vendor"
	"fitout/internal/infrastructure/auth"
	"fitout/internal/infrastructure/config"
	"fitout/internal/infrastructure/database"
	"fitout/internal/infrastructure/persistence/seeds"
	"fitout/internal/infrastructure/repository"
	"fitout/internal/shared/logger"
)

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load seed data from a YAML file",
		Long:  `Load console users, vendors and product catalogs from a YAML seed file. Existing records are skipped, so the command is safe to re-run.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "seeds.yaml", "Path to the seed file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	seedFile, err := seeds.ParseFile(file)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(database.Get())
	vendorRepo := repository.NewVendorRepository(database.Get())
	productRepo := repository.NewProductRepository(database.Get())

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpMinutes, cfg.Auth.RefreshExpDays)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)

	userService := userapp.NewService(userRepo, hasher, jwtService, log)
	vendorService := vendorapp.NewService(vendorRepo, log)
	productService := productapp.NewService(productRepo, vendorRepo, log)

	loader := seeds.NewLoader(userService, vendorService, productService, log)
	result, err := loader.Apply(context.Background(), seedFile)
	if err != nil {
		return err
	}

	log.Infow("seeding finished",
		"users", fmt.Sprintf("%d created, %d skipped", result.UsersCreated, result.UsersSkipped),
		"vendors", fmt.Sprintf("%d created, %d skipped", result.VendorsCreated, result.VendorsSkipped),
		"products", fmt.Sprintf("%d created, %d skipped", result.ProductsCreated, result.ProductsSkipped),
	)
	return nil
}
