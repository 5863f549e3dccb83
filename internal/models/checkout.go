package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
)

type ShippingAddress struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

type Checkout struct {
	Base
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"               json:"user"`
	CheckoutItems   []CheckoutItem  `gorm:"foreignKey:CheckoutID"                  json:"checkoutItems"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_"      json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"            json:"totalPrice"`
	IsPaid          bool            `gorm:"not null"                               json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	PaymentStatus   string          `gorm:"not null"                               json:"paymentStatus"`
	PaymentDetails  datatypes.JSON  `json:"paymentDetails,omitempty"`
	IsFinalized     bool            `gorm:"index;not null"                         json:"isFinalized"`
	FinalizedAt     *time.Time      `json:"finalizedAt,omitempty"`
}

type CheckoutItem struct {
	Base
	CheckoutID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	LineItem
}
