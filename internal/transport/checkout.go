package transport

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/printshop/internal/models"
)

type CheckoutRequest struct {
	CheckoutItems   []models.LineItem      `json:"checkoutItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
}

type PayRequest struct {
	PaymentStatus  string          `json:"paymentStatus"`
	PaymentDetails json.RawMessage `json:"paymentDetails"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}
