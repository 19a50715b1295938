package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
	"github.com/tealeg/xlsx"
)

// ExportProducts writes the seller's catalog as an Excel workbook.
func ExportProducts(c *gin.Context) {
	utils.LogInfo("ExportProducts called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var products []models.Product
	if err := productsWithImages(config.DB).Where("user_id = ?", user.ID).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products for export: %v", err)
		utils.InternalServerError(c, "Failed to export catalog", err.Error())
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Catalog")
	if err != nil {
		utils.LogError("Failed to create export sheet: %v", err)
		utils.InternalServerError(c, "Failed to export catalog", err.Error())
		return
	}

	boldStyle := xlsx.NewStyle()
	boldFont := xlsx.DefaultFont()
	boldFont.Bold = true
	boldStyle.Font = *boldFont

	header := sheet.AddRow()
	for _, title := range []string{"ID", "Name", "Description", "Price", "Status", "Rating", "Images"} {
		cell := header.AddCell()
		cell.SetString(title)
		cell.SetStyle(boldStyle)
	}

	for i := range products {
		p := &products[i]

		status := "inactive"
		if p.Status {
			status = "active"
		}

		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetFloatWithFormat(p.Price, "0.00")
		row.AddCell().SetString(status)
		if p.Review != nil {
			row.AddCell().SetFloatWithFormat(*p.Review, "0.0")
		} else {
			row.AddCell().SetString("-")
		}
		row.AddCell().SetInt(len(p.Images))
	}

	filename := fmt.Sprintf("catalog-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write export workbook: %v", err)
		utils.InternalServerError(c, "Failed to export catalog", err.Error())
		return
	}

	utils.LogInfo("Catalog exported for seller %d, %d products", user.ID, len(products))
}
