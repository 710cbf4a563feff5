package domain

import "time"

// PaymentStatus values stored on a checkout session. Payment confirmation
// arrives as an external signal; "paid" is the only accepted literal.
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "paid"
)

type ShippingAddress struct {
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// CheckoutSession is a staged snapshot of a cart plus shipping and payment
// intent. It moves Pending -> paid -> finalized and becomes immutable once
// finalized.
type CheckoutSession struct {
	ID              string          `bson:"_id" json:"id"`
	UserID          string          `bson:"user_id" json:"userId"`
	Items           []CartItem      `bson:"items" json:"checkoutItems"`
	ShippingAddress ShippingAddress `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string          `bson:"payment_method" json:"paymentMethod"`
	TotalPrice      float64         `bson:"total_price" json:"totalPrice"`
	PaymentStatus   string          `bson:"payment_status" json:"paymentStatus"`
	IsPaid          bool            `bson:"is_paid" json:"isPaid"`
	PaymentDetails  any             `bson:"payment_details,omitempty" json:"paymentDetails,omitempty"`
	PaidAt          *time.Time      `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
	IsFinalized     bool            `bson:"is_finalized" json:"isFinalized"`
	FinalizedAt     *time.Time      `bson:"finalized_at,omitempty" json:"finalizedAt,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
}

// CanFinalize reports whether the session is in the one state from which an
// order may be produced.
func (s *CheckoutSession) CanFinalize() bool {
	return s.IsPaid && !s.IsFinalized
}
