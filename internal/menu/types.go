package menu

import (
	"errors"
	"time"
)

// Item is a single entry in the office canteen menu. Prices are stored
// in whole rupiah; fractional prices do not occur.
type Item struct {
	ID         int64     `json:"id"`
	Nama       string    `json:"nama"`
	Harga      int64     `json:"harga"`
	KategoriID int64     `json:"kategori_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ItemWithCategory is an Item joined with its category name, used by
// listings that display the category inline.
type ItemWithCategory struct {
	Item
	Kategori string `json:"kategori"`
}

// Category is a menu grouping (makanan, minuman, snack).
type Category struct {
	ID   int64  `json:"id"`
	Nama string `json:"nama"`
}

// Sentinel errors for the menu catalogue.
var (
	// ErrItemExists indicates a create with an ID or name already taken.
	ErrItemExists = errors.New("menu item already exists")

	// ErrItemNotFound indicates the requested menu item does not exist.
	ErrItemNotFound = errors.New("menu item not found")
)
