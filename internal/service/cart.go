package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/printshop/internal/models"
	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/transport"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

type CartService struct {
	Repo *repo.GormRepo
}

// Owner picks the cart owner: the signed-in user when there is one,
// otherwise the guest id.
func Owner(user *models.User, guestID string) (repo.CartOwner, error) {
	if user != nil {
		id := user.ID
		return repo.CartOwner{UserID: &id}, nil
	}
	guestID = strings.TrimSpace(guestID)
	if guestID == "" {
		return repo.CartOwner{}, fmt.Errorf("%w: Guest ID or user ID is required", ErrValidation)
	}
	return repo.CartOwner{GuestID: guestID}, nil
}

func lineFromRequest(req transport.CartLineRequest) models.LineItem {
	return models.LineItem{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      strings.TrimSpace(req.Size),
		TextColor: strings.TrimSpace(req.TextColor),
		BaseColor: strings.TrimSpace(req.BaseColor),
		CustName:  strings.TrimSpace(req.CustName),
	}
}

func findLine(items []models.CartItem, line models.LineItem) int {
	for i := range items {
		if items[i].SameVariant(line) {
			return i
		}
	}
	return -1
}

func (s *CartService) Get(ctx context.Context, owner repo.CartOwner) (*models.Cart, error) {
	cart, err := s.Repo.GetCart(ctx, owner)
	if err != nil {
		return nil, notFound(err, "Cart not found")
	}
	return cart, nil
}

// Add puts a product into the cart, merging with an identical line. Name,
// image and price are copied from the product at this moment.
func (s *CartService) Add(ctx context.Context, owner repo.CartOwner, req transport.CartLineRequest) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add", "product_id", req.ProductID)

	product, err := s.Repo.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, notFound(err, "Product not found")
	}

	line := lineFromRequest(req)
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	line.Name = product.Name
	line.Image = product.FirstImage()
	line.Price = product.Price

	cart, err := s.Repo.MutateCart(ctx, owner, true, func(c *models.Cart) error {
		if i := findLine(c.Products, line); i >= 0 {
			c.Products[i].Quantity += line.Quantity
			return nil
		}
		c.Products = append(c.Products, models.CartItem{LineItem: line})
		return nil
	})
	if err != nil {
		l.Errorw("add_to_cart_error", "status", 500, "error", err)
		return nil, err
	}
	return cart, nil
}

// Update sets the quantity of a line; zero removes it.
func (s *CartService) Update(ctx context.Context, owner repo.CartOwner, req transport.CartLineRequest) (*models.Cart, error) {
	line := lineFromRequest(req)
	if line.Quantity < 0 {
		return nil, fmt.Errorf("%w: Quantity cannot be negative", ErrValidation)
	}

	cart, err := s.Repo.MutateCart(ctx, owner, false, func(c *models.Cart) error {
		i := findLine(c.Products, line)
		if i < 0 {
			return fmt.Errorf("%w: Product not found in cart", ErrNotFound)
		}
		if line.Quantity == 0 {
			c.Products = append(c.Products[:i], c.Products[i+1:]...)
			return nil
		}
		c.Products[i].Quantity = line.Quantity
		return nil
	})
	if err != nil {
		return nil, notFound(err, "Cart not found")
	}
	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, owner repo.CartOwner, req transport.CartLineRequest) (*models.Cart, error) {
	line := lineFromRequest(req)

	cart, err := s.Repo.MutateCart(ctx, owner, false, func(c *models.Cart) error {
		i := findLine(c.Products, line)
		if i < 0 {
			return fmt.Errorf("%w: Product not found in cart", ErrNotFound)
		}
		c.Products = append(c.Products[:i], c.Products[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, notFound(err, "Cart not found")
	}
	return cart, nil
}

func mergeLines(dst, src *models.Cart) {
	for _, it := range src.Products {
		if i := findLine(dst.Products, it.LineItem); i >= 0 {
			dst.Products[i].Quantity += it.Quantity
			continue
		}
		dst.Products = append(dst.Products, models.CartItem{LineItem: it.LineItem})
	}
}

// Merge moves the guest cart into the user's cart. Without a guest cart the
// user's own cart is returned.
func (s *CartService) Merge(ctx context.Context, userID uuid.UUID, guestID string) (*models.Cart, error) {
	guestID = strings.TrimSpace(guestID)
	if guestID == "" {
		return nil, fmt.Errorf("%w: Guest ID is required", ErrValidation)
	}

	cart, err := s.Repo.MergeGuestCart(ctx, guestID, userID, mergeLines)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.FromContext(ctx).Errorw("merge_cart_error", "status", 500, "error", err)
		return nil, err
	}

	cart, err = s.Repo.GetCart(ctx, repo.CartOwner{UserID: &userID})
	if err != nil {
		return nil, notFound(err, "Guest cart not found")
	}
	return cart, nil
}
