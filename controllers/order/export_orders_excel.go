package orderControllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/fishparque-api/catalog"
	"github.com/junaidrashid-git/fishparque-api/models"
	"github.com/junaidrashid-git/fishparque-api/notify"
	"github.com/tealeg/xlsx"
)

// OrdersWorkbook lays orders out one per row on an "Orders" sheet and adds a
// "Sales" sheet totalling each catalog product.
func OrdersWorkbook(orders []models.Order, cat *catalog.Catalog) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	headers := []string{
		"Order Number", "Date", "Customer Name", "Email", "Phone",
		"Address", "Items", "Total", "Status",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()

		row.AddCell().SetValue(o.OrderNumber)
		row.AddCell().SetValue(o.Date)
		row.AddCell().SetValue(o.Customer.Name)
		row.AddCell().SetValue(o.Customer.Email)
		row.AddCell().SetValue(o.Customer.Phone)
		row.AddCell().SetValue(o.Customer.Address)

		var items []string
		for _, item := range o.Items {
			items = append(items, item.Name+" ("+notify.FormatNumber(item.Quantity)+item.Unit+")")
		}
		row.AddCell().SetValue(strings.Join(items, "; "))

		row.AddCell().SetValue(o.Total)
		row.AddCell().SetValue(string(o.Status))
	}

	if err := addSalesSheet(file, orders, cat); err != nil {
		return nil, err
	}
	return file, nil
}

// addSalesSheet writes one row per catalog product, in catalog key order, with
// the quantity sold and revenue across orders. Lines for products no longer in
// the catalog are left out.
func addSalesSheet(file *xlsx.File, orders []models.Order, cat *catalog.Catalog) error {
	sheet, err := file.AddSheet("Sales")
	if err != nil {
		return err
	}

	type sales struct {
		quantity float64
		revenue  float64
	}
	byProduct := map[string]sales{}
	for _, o := range orders {
		for _, item := range o.Items {
			s := byProduct[item.ID]
			s.quantity += item.Quantity
			s.revenue += item.Subtotal
			byProduct[item.ID] = s
		}
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"Product Key", "Product", "Unit", "Quantity Sold", "Revenue"} {
		headerRow.AddCell().SetValue(h)
	}
	for _, key := range cat.Keys() {
		product, _ := cat.Lookup(key)
		s := byProduct[key]

		row := sheet.AddRow()
		row.AddCell().SetValue(key)
		row.AddCell().SetValue(product.Name)
		row.AddCell().SetValue(product.Unit)
		row.AddCell().SetValue(s.quantity)
		row.AddCell().SetValue(s.revenue)
	}
	return nil
}

// GET /api/admin/orders/export
func ExportOrdersToExcel(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := OrdersWorkbook(svc.SearchOrders(c.Query("q")), svc.catalog)
		if err != nil {
			log.Printf("❌ Failed to build orders workbook: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create Excel sheet"})
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=fish-parque-orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Printf("❌ Failed to write orders workbook: %v", err)
		}
	}
}
