package models

import "time"

// CatalogProduct is one product from the store catalog: the global product
// id and the listing title the retrieval index is built from.
type CatalogProduct struct {
	GID         string    `json:"gid" db:"gid"`
	Title       string    `json:"title" db:"title"`
	RefreshedAt time.Time `json:"refreshed_at" db:"refreshed_at"`
}

// CatalogInfo describes the currently loaded catalog snapshot.
type CatalogInfo struct {
	ProductCount int       `json:"product_count"`
	RefreshedAt  time.Time `json:"refreshed_at"`
}
