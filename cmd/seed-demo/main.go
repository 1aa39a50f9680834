// seed-demo loads a small café menu, its pantry, recipes and the receipt
// profile into the configured MySQL database.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_NAME=... go run ./cmd/seed-demo
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/events"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/workflow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type demoDish struct {
	menu        models.NewMenuItem
	ingredients [][2]string
}

var demoInventory = []models.NewInventoryItem{
	{Name: "Coffee Beans", Type: "Perishable", PackStock: 8, MeasurementUnit: "g", MeasurementQtyPerPack: "1000", UnitCost: "850"},
	{Name: "Fresh Milk", Type: "Perishable", PackStock: 12, MeasurementUnit: "ml", MeasurementQtyPerPack: "1000", UnitCost: "95"},
	{Name: "Rice", Type: "Non-Perishable", PackStock: 4, MeasurementUnit: "g", MeasurementQtyPerPack: "25000", UnitCost: "1400"},
	{Name: "Pork Belly", Type: "Perishable", PackStock: 6, MeasurementUnit: "g", MeasurementQtyPerPack: "1000", UnitCost: "380"},
	{Name: "Eggs", Type: "Perishable", PackStock: 5, MeasurementUnit: "pcs", MeasurementQtyPerPack: "30", UnitCost: "240"},
	{Name: "Ube Halaya", Type: "Perishable", PackStock: 3, MeasurementUnit: "g", MeasurementQtyPerPack: "500", UnitCost: "160"},
	{Name: "Paper Cups", Type: "Not Food", PackStock: 20, MeasurementUnit: "pcs", MeasurementQtyPerPack: "50", UnitCost: "120"},
}

var demoMenu = []demoDish{
	{models.NewMenuItem{Name: "Americano", Category: "Beverages", BasePrice: "100"}, [][2]string{{"Coffee Beans", "18"}}},
	{models.NewMenuItem{Name: "Cafe Latte", Category: "Beverages", BasePrice: "130"}, [][2]string{{"Coffee Beans", "18"}, {"Fresh Milk", "200"}}},
	{models.NewMenuItem{Name: "Lechon Kawali Rice", Category: "Main Dishes", BasePrice: "220"}, [][2]string{{"Pork Belly", "180"}, {"Rice", "200"}}},
	{models.NewMenuItem{Name: "Garlic Rice", Category: "Side Dish", BasePrice: "45"}, [][2]string{{"Rice", "150"}}},
	{models.NewMenuItem{Name: "Fried Egg", Category: "Side Dish", BasePrice: "25"}, [][2]string{{"Eggs", "1"}}},
	{models.NewMenuItem{Name: "Ube Cheesecake", Category: "Desserts", BasePrice: "150"}, [][2]string{{"Ube Halaya", "60"}, {"Eggs", "1"}}},
}

func main() {
	force := flag.Bool("force", false, "Seed even when menu items already exist")
	flag.Parse()

	if !config.DatabaseConfigured() {
		fmt.Fprintln(os.Stderr, "database not configured. Set DB_* env vars.")
		os.Exit(1)
	}
	if err := config.ConnectDatabaseWithRetry(5); err != nil {
		fmt.Fprintf(os.Stderr, "connect database: %v\n", err)
		os.Exit(1)
	}
	db := config.GetDB()
	if err := models.MigrateTable(db); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store := models.NewGormStore(db)
	if err := seed(ctx, store, *force); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, store models.Store, force bool) error {
	logger := config.GetLogger()
	existing, err := store.ListMenuItems(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 && !force {
		logger.WithFields(logrus.Fields{"menu_items": len(existing)}).Warn("menu already seeded; pass --force to add the demo set again")
		return nil
	}

	bus := events.NewBus()
	defer bus.Close()
	locker := workflow.NewLocalItemLocker()
	inventory := workflow.NewInventoryService(store, locker, workflow.NewStockAlertEvaluator(store, bus), bus)
	ledger := workflow.NewLedger(store, locker, bus, config.InventoryShortfallPolicy())

	pantry := make(map[string]string, len(demoInventory))
	for _, input := range demoInventory {
		res, err := inventory.CreateItem(ctx, input)
		if err != nil {
			return fmt.Errorf("inventory %s: %w", input.Name, err)
		}
		pantry[input.Name] = res.Item.ID
		// start the kitchen with one opened pack of every ingredient
		if res.Item.UsableInRecipes() {
			if _, err := inventory.OpenPack(ctx, res.Item.ID, 1); err != nil {
				return fmt.Errorf("open pack %s: %w", input.Name, err)
			}
		}
	}

	for _, dish := range demoMenu {
		item, err := dish.menu.ToMenuItem()
		if err != nil {
			return fmt.Errorf("menu %s: %w", dish.menu.Name, err)
		}
		if err := store.SaveMenuItem(ctx, item); err != nil {
			return fmt.Errorf("menu %s: %w", dish.menu.Name, err)
		}
		var ingredients []models.NewRecipeIngredient
		for _, in := range dish.ingredients {
			ingredients = append(ingredients, models.NewRecipeIngredient{
				InventoryItemID:    pantry[in[0]],
				QuantityPerServing: decimal.RequireFromString(in[1]),
			})
		}
		if _, err := ledger.EditRecipe(ctx, item.ID, ingredients); err != nil {
			return fmt.Errorf("recipe %s: %w", dish.menu.Name, err)
		}
	}

	profile := models.DefaultBusinessProfile()
	if err := store.SaveBusinessProfile(ctx, &profile); err != nil {
		return fmt.Errorf("business profile: %w", err)
	}

	supplier, err := models.NewSupplier{Name: "Benguet Farms Supply", Email: "orders@benguetfarms.com"}.ToSupplier()
	if err != nil {
		return err
	}
	if err := store.SaveSupplier(ctx, supplier); err != nil {
		return fmt.Errorf("supplier: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"menu_items":      len(demoMenu),
		"inventory_items": len(demoInventory),
	}).Info("demo data seeded")
	return nil
}
