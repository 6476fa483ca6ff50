package userControllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/fishparque-api/models"
	"github.com/tealeg/xlsx"
)

// UsersWorkbook lays profiles out one per row.
func UsersWorkbook(profiles []models.Profile) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Users")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"Name", "Email", "Phone", "Address", "Registered Date"} {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range profiles {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Email)
		row.AddCell().SetValue(p.Phone)
		row.AddCell().SetValue(p.Address)

		registered := ""
		if p.CreatedAt != nil {
			registered = p.CreatedAt.Format(time.RFC3339)
		}
		row.AddCell().SetValue(registered)
	}
	return file, nil
}

// GET /api/admin/users/export
func ExportUsersToExcel(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := UsersWorkbook(svc.Profiles(c.Query("q")))
		if err != nil {
			log.Printf("❌ Failed to build users workbook: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create Excel sheet"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=fish-parque-users.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Printf("❌ Failed to write users workbook: %v", err)
		}
	}
}
