package models

// ProductType is a category label applied to products. Immutable reference
// data, seeded by migration.
type ProductType struct {
	ID    int    `db:"id" json:"id"`
	Label string `db:"label" json:"label"`
}
