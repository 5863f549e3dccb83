package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	Base
	Number          int64           `gorm:"uniqueIndex;not null"              json:"orderNumber,string"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"          json:"userId"`
	User            *User           `gorm:"foreignKey:UserID"                 json:"user,omitempty"`
	CheckoutID      uuid.UUID       `gorm:"type:uuid;uniqueIndex"             json:"checkoutId"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID"                json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"       json:"totalPrice"`
	IsPaid          bool            `gorm:"not null"                          json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `gorm:"not null"                          json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	PaymentStatus   string          `gorm:"not null"                          json:"paymentStatus"`
	PaymentDetails  datatypes.JSON  `json:"paymentDetails,omitempty"`
	Status          string          `gorm:"index;not null"                    json:"status"`
}

type OrderItem struct {
	Base
	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	LineItem
}
