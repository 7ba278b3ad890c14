package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a listed item for sale in the catalog.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID            int             `db:"id" json:"id"`
	Title         string          `db:"title" json:"title"`
	Description   string          `db:"description" json:"description"`
	Price         decimal.Decimal `db:"price" json:"price"`
	Quantity      int             `db:"quantity" json:"quantity"`
	City          string          `db:"city" json:"city"`
	ImagePath     string          `db:"image_path" json:"imagePath"`
	Active        bool            `db:"active" json:"active"`
	DateCreated   time.Time       `db:"date_created" json:"dateCreated"`
	UserID        int             `db:"user_id" json:"userId"`
	ProductTypeID int             `db:"product_type_id" json:"productTypeId"`

	// Joined from product_types when the query eager-loads the type.
	ProductTypeLabel *string `db:"product_type_label" json:"productTypeLabel,omitempty"`
}

// ProductDetailView is the shaped payload for the product detail page.
// HasLikeButton and HasDislikeButton are true only when the requesting
// user has not yet reacted to the product.
type ProductDetailView struct {
	ProductID        int             `json:"productId"`
	DateCreated      time.Time       `json:"dateCreated"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	ProductType      ProductType     `json:"productType"`
	HasLikeButton    bool            `json:"hasLikeButton"`
	HasDislikeButton bool            `json:"hasDislikeButton"`
}

// ProductTypeOption is a (label, value) pair for the create-form dropdown.
type ProductTypeOption struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}
