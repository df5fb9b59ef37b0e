package models

type Item struct {
	ID      int     `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	Price   float64 `json:"price" db:"price"`
	IsOffer bool    `json:"is_offer" db:"is_offer"`
}

// NewItem holds the caller supplied fields of an item that is not stored yet
type NewItem struct {
	Name    string
	Price   float64
	IsOffer bool
}
