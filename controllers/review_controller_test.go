package controllers

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordPayment(t *testing.T, user models.User, product models.Product) models.StripePay {
	t.Helper()
	payment := models.StripePay{
		StripePaymentID:   "pi_test",
		UserID:            user.ID,
		ProductIDs:        strconv.FormatUint(uint64(product.ID), 10),
		ProductQuantities: "1",
		Amount:            product.Price,
		Currency:          "eur",
	}
	require.NoError(t, config.DB.Create(&payment).Error)
	return payment
}

func TestAddReviewRequiresOwnPayment(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	buyer := createUser(t, models.RoleClient)
	freeloader := createUser(t, models.RoleClient)

	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})
	payment := recordPayment(t, buyer, product)

	// Someone else's payment does not count
	c, w := testContext(t, "POST", "/v1/products/reviews", AddReviewRequest{
		StripeID:   payment.ID,
		ClientRate: 5,
		Comment:    "Tuturu!",
	}, &freeloader)
	setParam(c, "id", product.ID)
	AddReview(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.Review{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAddReviewRequiresPaymentCoveringProduct(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	buyer := createUser(t, models.RoleClient)

	bought := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})
	other := createProductFor(t, seller, "Mayuri Shiina", []string{"https://cdn.example.com/b.jpg"})
	payment := recordPayment(t, buyer, bought)

	// A real payment for one product does not unlock reviewing another
	c, w := testContext(t, "POST", "/v1/products/reviews", AddReviewRequest{
		StripeID:   payment.ID,
		ClientRate: 5,
		Comment:    "Tuturu!",
	}, &buyer)
	setParam(c, "id", other.ID)
	AddReview(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.Review{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAddReviewUpdatesAverageRating(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	buyer := createUser(t, models.RoleClient)
	second := createUser(t, models.RoleClient)

	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})

	c, w := testContext(t, "POST", "/v1/products/reviews", AddReviewRequest{
		StripeID:   recordPayment(t, buyer, product).ID,
		ClientRate: 5,
		Comment:    "Tuturu!",
	}, &buyer)
	setParam(c, "id", product.ID)
	AddReview(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	c, w = testContext(t, "POST", "/v1/products/reviews", AddReviewRequest{
		StripeID:   recordPayment(t, second, product).ID,
		ClientRate: 3,
		Comment:    "Box arrived dented",
	}, &second)
	setParam(c, "id", product.ID)
	AddReview(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stored models.Product
	require.NoError(t, config.DB.First(&stored, product.ID).Error)
	require.NotNil(t, stored.Review)
	assert.InDelta(t, 4.0, *stored.Review, 0.001)
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	buyer := createUser(t, models.RoleClient)

	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})
	payment := recordPayment(t, buyer, product)

	c, w := testContext(t, "POST", "/v1/products/reviews", AddReviewRequest{
		StripeID:   payment.ID,
		ClientRate: 6,
		Comment:    "Off the scale",
	}, &buyer)
	setParam(c, "id", product.ID)
	AddReview(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductReviews(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	buyer := createUser(t, models.RoleClient)

	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})
	payment := recordPayment(t, buyer, product)

	c, w := testContext(t, "POST", "/v1/products/reviews", AddReviewRequest{
		StripeID:   payment.ID,
		ClientRate: 4,
		Comment:    "Great sculpt",
	}, &buyer)
	setParam(c, "id", product.ID)
	AddReview(c)
	require.Equal(t, http.StatusCreated, w.Code)

	c, w = testContext(t, "GET", "/v1/products/reviews", nil, nil)
	setParam(c, "id", product.ID)
	GetProductReviews(c)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	reviews := body["data"].(map[string]interface{})["reviews"].([]interface{})
	assert.Len(t, reviews, 1)
}
