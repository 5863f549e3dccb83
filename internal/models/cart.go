package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is the product snapshot shared by cart, checkout and order lines.
type LineItem struct {
	ProductID uuid.UUID       `gorm:"type:uuid;not null"          json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity  int             `gorm:"not null"                    json:"quantity"`
	Size      string          `json:"size,omitempty"`
	CustName  string          `json:"custName,omitempty"`
	TextColor string          `json:"textColor,omitempty"`
	BaseColor string          `json:"baseColor,omitempty"`
	Position  int             `gorm:"not null"                    json:"-"`
}

func (l LineItem) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SameVariant reports whether both lines describe the same product with the
// same chosen options.
func (l LineItem) SameVariant(o LineItem) bool {
	return l.ProductID == o.ProductID &&
		l.Size == o.Size &&
		l.TextColor == o.TextColor &&
		l.BaseColor == o.BaseColor &&
		strings.TrimSpace(l.CustName) == strings.TrimSpace(o.CustName)
}

func SumLines(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total())
	}
	return total
}

type Cart struct {
	Base
	UserID     *uuid.UUID      `gorm:"type:uuid;uniqueIndex"                                 json:"user,omitempty"`
	GuestID    string          `gorm:"uniqueIndex:idx_carts_guest_id,where:user_id IS NULL" json:"guestId,omitempty"`
	Products   []CartItem      `gorm:"foreignKey:CartID"                                     json:"products"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"                           json:"totalPrice"`
}

type CartItem struct {
	Base
	CartID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	LineItem
}

func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, 0, len(c.Products))
	for _, p := range c.Products {
		out = append(out, p.LineItem)
	}
	return out
}

func (c *Cart) Recalculate() {
	c.TotalPrice = SumLines(c.Lines())
}
