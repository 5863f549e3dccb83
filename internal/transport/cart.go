package transport

import "github.com/google/uuid"

// CartLineRequest addresses one cart line by product and chosen options.
type CartLineRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"  validate:"gte=0"`
	Size      string    `json:"size"`
	TextColor string    `json:"textColor"`
	BaseColor string    `json:"baseColor"`
	CustName  string    `json:"custName"`
	GuestID   string    `json:"guestId"   query:"guestId"`
}

type MergeCartRequest struct {
	GuestID string `json:"guestId"`
}
