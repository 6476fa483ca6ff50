package productcontroller

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/fishparque-api/catalog"
	"github.com/junaidrashid-git/fishparque-api/controllers/respond"
)

// GET /api/products
func GetProducts(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond.OK(c, gin.H{"products": cat.Products()})
	}
}
