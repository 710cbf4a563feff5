package domain

// User is a read-only projection of the account record, attached to order
// detail responses. Account management lives in a separate service.
type User struct {
	ID    string `bson:"_id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}
