package domain

import "time"

// OwnerKind tags which identity space a cart belongs to.
type OwnerKind int

const (
	OwnerUser OwnerKind = iota
	OwnerGuest
)

// CartOwner identifies the single owner of a cart: a registered user or a
// guest, never both.
type CartOwner struct {
	Kind OwnerKind
	ID   string
}

func UserOwner(id string) CartOwner {
	return CartOwner{Kind: OwnerUser, ID: id}
}

func GuestOwner(id string) CartOwner {
	return CartOwner{Kind: OwnerGuest, ID: id}
}

// ResolveOwner picks the owner identity for a request. A user id always wins
// over a guest id. The second return is false when neither was supplied,
// which callers treat as "a fresh guest identity must be generated".
func ResolveOwner(userID, guestID string) (CartOwner, bool) {
	if userID != "" {
		return UserOwner(userID), true
	}
	if guestID != "" {
		return GuestOwner(guestID), true
	}
	return CartOwner{Kind: OwnerGuest}, false
}

type CartItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Image     string  `bson:"image" json:"image"`
	Price     float64 `bson:"price" json:"price"`
	Size      string  `bson:"size" json:"size"`
	Color     string  `bson:"color" json:"color"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// SameLine reports whether the item matches the line identity
// (product, size, color).
func (i CartItem) SameLine(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

type Cart struct {
	ID         string     `bson:"_id" json:"id"`
	UserID     string     `bson:"user_id,omitempty" json:"userId,omitempty"`
	GuestID    string     `bson:"guest_id,omitempty" json:"guestId,omitempty"`
	Items      []CartItem `bson:"items" json:"items"`
	TotalPrice float64    `bson:"total_price" json:"totalPrice"`

	// Version guards against lost updates: every persisted mutation is
	// conditional on the version the writer read.
	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// FindItem returns the index of the line matching (productID, size, color),
// or -1.
func (c *Cart) FindItem(productID, size, color string) int {
	for i, item := range c.Items {
		if item.SameLine(productID, size, color) {
			return i
		}
	}
	return -1
}

// RecomputeTotal derives the cart total from scratch. Always a full sum over
// the current items, never incremental.
func (c *Cart) RecomputeTotal() {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalPrice = total
}
