package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cafev2/storefront-backend/pkg/config"
	"github.com/cafev2/storefront-backend/pkg/db"
	"github.com/cafev2/storefront-backend/pkg/db/models"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/security"
	"github.com/cafev2/storefront-backend/pkg/types"
)

// Seeds the starter catalog, the settings row, and a dashboard admin.
// Safe to run repeatedly; existing rows are left alone.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	conn := dbClient.DB().WithContext(ctx)

	if err := seedSettings(conn, cfg); err != nil {
		logg.Error(ctx, "failed to seed settings", err)
		os.Exit(1)
	}

	if err := seedMenu(conn); err != nil {
		logg.Error(ctx, "failed to seed menu", err)
		os.Exit(1)
	}

	if err := seedAdmin(conn, cfg, logg); err != nil {
		logg.Error(ctx, "failed to seed admin user", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed complete")
}

func seedSettings(conn *gorm.DB, cfg *config.Config) error {
	var existing models.StoreSettings
	err := conn.First(&existing, models.SettingsRowID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return conn.Create(&models.StoreSettings{
		ID:         models.SettingsRowID,
		ManualOpen: true,
		OpenTime:   cfg.Availability.DefaultOpenTime,
		CloseTime:  cfg.Availability.DefaultCloseTime,
	}).Error
}

func seedMenu(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return conn.Create(starterMenu()).Error
}

func seedAdmin(conn *gorm.DB, cfg *config.Config, logg *logger.Logger) error {
	email := os.Getenv("CAFE_SEED_ADMIN_EMAIL")
	password := os.Getenv("CAFE_SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logg.Warn(context.Background(), "CAFE_SEED_ADMIN_EMAIL/PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing models.AdminUser
	err := conn.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		return err
	}
	return conn.Create(&models.AdminUser{Email: email, PasswordHash: hash}).Error
}

func starterMenu() []models.MenuItem {
	return []models.MenuItem{
		{
			Name:        "Classic Cheese Burger",
			Price:       decimal.NewFromInt(180),
			Category:    "Snacks",
			IsVeg:       true,
			Description: "Crispy patty with fresh veggies and extra cheese.",
			Media:       gallery("https://images.unsplash.com/photo-1568901346375-23c9450c58cd?auto=format&fit=crop&q=80&w=400"),
		},
		{
			Name:        "Peri Peri Fries",
			Price:       decimal.NewFromInt(120),
			Category:    "Snacks",
			IsVeg:       true,
			Description: "Golden fries tossed in spicy peri peri seasoning.",
			Media:       gallery("https://images.unsplash.com/photo-1630384060421-cb20d0e0649d?auto=format&fit=crop&q=80&w=400"),
		},
		{
			Name:        "Chicken Club Sandwich",
			Price:       decimal.NewFromInt(220),
			Category:    "Meals",
			IsVeg:       false,
			Description: "Triple-layered bread with grilled chicken and egg.",
			Media:       gallery("https://images.unsplash.com/photo-1528735602780-2552fd46c7af?auto=format&fit=crop&q=80&w=400"),
		},
		{
			Name:        "Iced Caramel Macchiato",
			Price:       decimal.NewFromInt(150),
			Category:    "Drinks",
			IsVeg:       true,
			Description: "Freshly brewed coffee with caramel drizzle.",
			Media:       gallery("https://images.unsplash.com/photo-1461023232487-210932ee5f92?auto=format&fit=crop&q=80&w=400"),
		},
		{
			Name:        "Margherita Pizza",
			Price:       decimal.NewFromInt(350),
			Category:    "Meals",
			IsVeg:       true,
			Description: "Fresh mozzarella, tomato sauce, and basil.",
			Media:       gallery("https://images.unsplash.com/photo-1604068549290-dea0e4a305ca?auto=format&fit=crop&q=80&w=400"),
		},
	}
}

func gallery(url string) types.MediaList {
	yPos := 50
	return types.MediaList{{URL: url, Type: types.MediaTypeImage, YPos: &yPos}}
}
