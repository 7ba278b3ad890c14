package models

import "time"

// Preference records a user's reaction to a product. The detail flow only
// cares about row existence; Liked stores the polarity for completeness.
// (user_id, product_id) is unique.
type Preference struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"userId"`
	ProductID int       `db:"product_id" json:"productId"`
	Liked     bool      `db:"liked" json:"liked"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
