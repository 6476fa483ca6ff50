package catalog

import (
	"os"

	"github.com/juju/errors"
	"github.com/juju/naturalsort"
	"github.com/junaidrashid-git/fishparque-api/models"
	"gopkg.in/yaml.v3"
)

// Catalog is the fixed product list. It is built once at startup and never mutated.
type Catalog struct {
	products map[string]models.Product
}

// Default returns the built-in Fish Parque catalog.
func Default() *Catalog {
	return New(map[string]models.Product{
		"fish_feed": {Name: "Fish Feed", MinQty: 10, Price: 500, Unit: "kg"},
		"catfish":   {Name: "Catfish", MinQty: 1, Price: 1500, Unit: "kg"},
		"materials": {Name: "Materials", MinQty: 50, Price: 300, Unit: "kg"},
	})
}

// New copies products into a new Catalog.
func New(products map[string]models.Product) *Catalog {
	c := &Catalog{products: make(map[string]models.Product, len(products))}
	for key, p := range products {
		c.products[key] = p
	}
	return c
}

// LoadFile reads a YAML document mapping product keys to products.
//
//	catfish:
//	  name: Catfish
//	  minQty: 1
//	  price: 1500
//	  unit: kg
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading catalog %s", path)
	}

	var products map[string]models.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, errors.Annotatef(err, "parsing catalog %s", path)
	}
	if len(products) == 0 {
		return nil, errors.NotValidf("empty catalog %s", path)
	}
	for key, p := range products {
		if p.Name == "" || p.Price <= 0 {
			return nil, errors.NotValidf("product %q", key)
		}
		if p.MinQty < 0 {
			return nil, errors.NotValidf("minimum quantity of product %q", key)
		}
	}
	return New(products), nil
}

// Lookup returns the product stored under key.
func (c *Catalog) Lookup(key string) (models.Product, bool) {
	p, ok := c.products[key]
	return p, ok
}

// Products returns a copy of the catalog keyed by product key.
func (c *Catalog) Products() map[string]models.Product {
	out := make(map[string]models.Product, len(c.products))
	for key, p := range c.products {
		out[key] = p
	}
	return out
}

// Keys returns the product keys in natural order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.products))
	for key := range c.products {
		keys = append(keys, key)
	}
	return naturalsort.Sort(keys)
}
