package transport

// OrderRow is one line of the admin order export.
type OrderRow struct {
	OrderNumber   int64  `csv:"order_number"`
	OrderID       string `csv:"order_id"`
	CreatedAt     string `csv:"created_at"`
	CustomerName  string `csv:"customer_name"`
	CustomerEmail string `csv:"customer_email"`
	Items         int    `csv:"items"`
	TotalPrice    string `csv:"total_price"`
	PaymentMethod string `csv:"payment_method"`
	IsPaid        bool   `csv:"is_paid"`
	Status        string `csv:"status"`
	IsDelivered   bool   `csv:"is_delivered"`
	DeliveredAt   string `csv:"delivered_at"`
	City          string `csv:"city"`
	Country       string `csv:"country"`
}

type SubscriberRow struct {
	Email        string `csv:"email"`
	SubscribedAt string `csv:"subscribed_at"`
}
