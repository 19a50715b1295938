package controllers

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// CheckoutRequest lists what the client is buying. The two slices are
// aligned by index.
type CheckoutRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required"`
	Quantities []int  `json:"quantities" binding:"required"`
	Currency   string `json:"currency"`
}

// minorUnits converts a major-unit amount to the minor unit Stripe
// expects. Rounded, not truncated: 19.99 is not representable as a
// float and truncation would bill one cent short.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Checkout creates a Stripe payment intent for the cart and records the
// payment. The amount is computed server side from current prices, the
// client never sends it.
func Checkout(c *gin.Context) {
	utils.LogInfo("Checkout called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if len(req.ProductIDs) == 0 {
		utils.BadRequest(c, "Validation failed", gin.H{"fields": []utils.FieldValidationError{
			{Field: "product_ids", Message: "At least one product is required"},
		}})
		return
	}
	if len(req.ProductIDs) != len(req.Quantities) {
		utils.BadRequest(c, "Validation failed", gin.H{"fields": []utils.FieldValidationError{
			{Field: "quantities", Message: "Quantities must match products one to one"},
		}})
		return
	}
	for _, qty := range req.Quantities {
		if qty <= 0 {
			utils.BadRequest(c, "Validation failed", gin.H{"fields": []utils.FieldValidationError{
				{Field: "quantities", Message: "Quantities must be greater than zero"},
			}})
			return
		}
	}

	currency := strings.ToLower(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "eur"
	}

	var total float64
	ids := make([]string, 0, len(req.ProductIDs))
	quantities := make([]string, 0, len(req.Quantities))
	for i, id := range req.ProductIDs {
		var product models.Product
		if err := config.DB.Where("id = ? AND status = ?", id, true).First(&product).Error; err != nil {
			utils.LogInfo("Checkout rejected, product %d not available", id)
			utils.NotFound(c, fmt.Sprintf("Product %d not available", id))
			return
		}
		total += product.Price * float64(req.Quantities[i])
		ids = append(ids, strconv.FormatUint(uint64(id), 10))
		quantities = append(quantities, strconv.Itoa(req.Quantities[i]))
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(total)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("user_id", strconv.FormatUint(uint64(user.ID), 10))

	intent, err := paymentintent.New(params)
	if err != nil {
		utils.LogError("Stripe payment intent failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Payment could not be initiated", err.Error())
		return
	}

	payment := models.StripePay{
		StripePaymentID:   intent.ID,
		UserID:            user.ID,
		ProductIDs:        strings.Join(ids, ","),
		ProductQuantities: strings.Join(quantities, ","),
		Amount:            total,
		Currency:          currency,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		utils.LogError("Failed to record payment %s: %v", intent.ID, err)
		utils.InternalServerError(c, "Failed to record payment", err.Error())
		return
	}

	utils.LogInfo("Payment intent %s created for user %d, total %.2f %s", intent.ID, user.ID, total, currency)
	utils.Created(c, "Payment initiated successfully", gin.H{
		"payment":       payment,
		"client_secret": intent.ClientSecret,
	})
}

// GetPayments returns the authenticated user's payment history
func GetPayments(c *gin.Context) {
	utils.LogInfo("GetPayments called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var payments []models.StripePay
	if err := config.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&payments).Error; err != nil {
		utils.LogError("Failed to fetch payments for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch payments", err.Error())
		return
	}

	utils.Success(c, "Payments retrieved successfully", gin.H{
		"payments": payments,
	})
}

// DownloadPaymentReceipt renders one of the user's own payments as a
// PDF receipt.
func DownloadPaymentReceipt(c *gin.Context) {
	utils.LogInfo("DownloadPaymentReceipt called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var payment models.StripePay
	if err := config.DB.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}
	if payment.UserID != user.ID {
		utils.Forbidden(c, "You do not have permission to view this receipt")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "KurisuShop")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Receipt #%d", payment.ID))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Date: %s", payment.CreatedAt.Format("02/01/2006 15:04")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Customer: %s %s (%s)", user.FirstName, user.LastName, user.Email))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Stripe payment: %s", payment.StripePaymentID))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(90, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Quantity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Subtotal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	productIDs := payment.ProductIDList()
	quantities := payment.QuantityList()
	for i, id := range productIDs {
		qty := 0
		if i < len(quantities) {
			qty = quantities[i]
		}

		name := fmt.Sprintf("Product %s", id)
		var price float64
		var product models.Product
		if err := config.DB.First(&product, "id = ?", id).Error; err == nil {
			name = product.Name
			price = product.Price
		}

		pdf.CellFormat(90, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, strconv.Itoa(qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", price*float64(qty)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(155, 10, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 10, fmt.Sprintf("%.2f %s", payment.Amount, strings.ToUpper(payment.Currency)), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to render receipt %d: %v", payment.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", payment.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
