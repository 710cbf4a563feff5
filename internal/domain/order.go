package domain

import "time"

// Order is the durable record produced exactly once from a finalized
// checkout session. This service never mutates an order after creation;
// delivery updates belong to a different system.
type Order struct {
	ID              string          `bson:"_id" json:"id"`
	UserID          string          `bson:"user_id" json:"userId"`
	OrderItems      []CartItem      `bson:"order_items" json:"orderItems"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string          `bson:"payment_method" json:"paymentMethod"`
	TotalPrice      float64         `bson:"total_price" json:"totalPrice"`
	IsPaid          bool            `bson:"is_paid" json:"isPaid"`
	PaidAt          *time.Time      `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	IsDelivered     bool            `bson:"is_delivered" json:"isDelivered"`
	PaymentStatus   string          `bson:"payment_status" json:"paymentStatus"`
	PaymentDetails  any             `bson:"payment_details,omitempty" json:"paymentDetails,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
}
