package models

// Product is a catalog entry. Price is a whole amount in the store currency per Unit.
type Product struct {
	Name   string  `json:"name" yaml:"name"`
	MinQty float64 `json:"minQty" yaml:"minQty"`
	Price  int     `json:"price" yaml:"price"`
	Unit   string  `json:"unit" yaml:"unit"`
}
