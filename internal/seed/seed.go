// Package seed resets the catalogue to a known state for local development.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/pkg/hash"
)

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "123456"
)

type sample struct {
	name, description, sku, category, collection string
	price                                        string
	sizes, textColors, baseColors                []string
	image                                        string
}

var samples = []sample{
	{
		name: "Layered Name Plank", description: "Two-tone 3D printed name plank for desks and doors.",
		sku: "PLK-001", category: "Planks", collection: "Personalised", price: "24.99",
		sizes: []string{"S", "M", "L"}, textColors: []string{"White", "Gold"}, baseColors: []string{"Black", "Navy"},
		image: "https://picsum.photos/seed/plk-001/800/800",
	},
	{
		name: "Kids Door Sign", description: "Rounded name sign with a cloud outline, printed in PLA.",
		sku: "PLK-002", category: "Planks", collection: "Kids", price: "19.50",
		sizes: []string{"M", "L"}, textColors: []string{"Pink", "Sky Blue"}, baseColors: []string{"White"},
		image: "https://picsum.photos/seed/plk-002/800/800",
	},
	{
		name: "Moon Lamp", description: "Lithophane moon lamp with a warm LED base.",
		sku: "LMP-001", category: "Lamps", collection: "Home", price: "39.00",
		sizes: []string{"M", "L"}, baseColors: []string{"Wood", "Black"},
		image: "https://picsum.photos/seed/lmp-001/800/800",
	},
	{
		name: "Hex Planter", description: "Self-draining hexagon planter for succulents.",
		sku: "HOM-001", category: "Planters", collection: "Home", price: "14.00",
		sizes: []string{"S", "M"}, baseColors: []string{"Terracotta", "White", "Sage"},
		image: "https://picsum.photos/seed/hom-001/800/800",
	},
	{
		name: "Custom Keychain", description: "Name keychain with a split ring, printed in two colours.",
		sku: "KEY-001", category: "Accessories", collection: "Personalised", price: "6.99",
		textColors: []string{"Black", "White"}, baseColors: []string{"Red", "Blue", "Green"},
		image: "https://picsum.photos/seed/key-001/800/800",
	},
	{
		name: "Cable Organizer", description: "Desk cable clip set, six pieces.",
		sku: "DSK-001", category: "Desk", collection: "Office", price: "9.99",
		baseColors: []string{"Black", "Grey"},
		image: "https://picsum.photos/seed/dsk-001/800/800",
	},
}

// Products builds the sample catalogue owned by the given user.
func Products(owner *models.User) ([]models.Product, error) {
	out := make([]models.Product, 0, len(samples))
	for _, s := range samples {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			return nil, fmt.Errorf("seed: price of %s: %w", s.sku, err)
		}
		out = append(out, models.Product{
			Name:        s.name,
			Description: s.description,
			Price:       price,
			SKU:         s.sku,
			Category:    s.category,
			Collections: s.collection,
			Sizes:       models.StringArray(s.sizes),
			TextColors:  models.StringArray(s.textColors),
			BaseColors:  models.StringArray(s.baseColors),
			Images:      datatypes.JSONSlice[models.ProductImage]{{URL: s.image, AltText: s.name}},
			IsPublished: true,
			UserID:      owner.ID,
		})
	}
	return out, nil
}

// Run wipes carts, products and users, then creates the admin account and
// the sample products in one transaction.
func Run(ctx context.Context, r *repo.GormRepo) (int, error) {
	pw, err := hash.HashPassword(AdminPassword)
	if err != nil {
		return 0, err
	}

	n := 0
	err = r.InTx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.DeleteAllCarts(ctx); err != nil {
			return fmt.Errorf("seed: clear carts: %w", err)
		}
		if err := tx.DeleteAllProducts(ctx); err != nil {
			return fmt.Errorf("seed: clear products: %w", err)
		}
		if err := tx.DeleteAllUsers(ctx); err != nil {
			return fmt.Errorf("seed: clear users: %w", err)
		}

		admin := &models.User{Name: "Admin User", Email: AdminEmail, PasswordHash: pw, Role: models.RoleAdmin}
		if err := tx.CreateUserIfNotExists(ctx, admin); err != nil {
			return fmt.Errorf("seed: admin: %w", err)
		}

		products, err := Products(admin)
		if err != nil {
			return err
		}
		for i := range products {
			if err := tx.CreateProduct(ctx, &products[i]); err != nil {
				return fmt.Errorf("seed: product %s: %w", products[i].SKU, err)
			}
		}
		n = len(products)
		return nil
	})
	return n, err
}
