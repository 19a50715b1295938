package controllers

import (
	"net/http"
	"testing"

	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attachDetails(t *testing.T, product models.Product, details models.ProductTechnicalDetails) {
	t.Helper()
	details.ProductID = product.ID
	require.NoError(t, config.DB.Create(&details).Error)
}

func TestCreateTechnicalDetailsRefusesDuplicates(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})

	manufacturer := "Good Smile Company"
	c, w := testContext(t, "POST", "/v1/product/technical-details", TechnicalDetailsRequest{
		Manufacturer: &manufacturer,
	}, &seller)
	setParam(c, "id", product.ID)
	CreateTechnicalDetails(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	c, w = testContext(t, "POST", "/v1/product/technical-details", TechnicalDetailsRequest{
		Manufacturer: &manufacturer,
	}, &seller)
	setParam(c, "id", product.ID)
	CreateTechnicalDetails(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTechnicalDetailsPartial(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})
	attachDetails(t, product, models.ProductTechnicalDetails{
		Manufacturer: "Good Smile Company",
		AnimeSeries:  "Steins;Gate",
		Character:    "Makise Kurisu",
	})

	collection := "Pop Up Parade"
	c, w := testContext(t, "PUT", "/v1/product/technical-details", TechnicalDetailsRequest{
		Collection: &collection,
	}, &seller)
	setParam(c, "id", product.ID)
	UpdateTechnicalDetails(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.ProductTechnicalDetails
	require.NoError(t, config.DB.Where("product_id = ?", product.ID).First(&stored).Error)
	assert.Equal(t, "Pop Up Parade", stored.Collection)
	assert.Equal(t, "Good Smile Company", stored.Manufacturer, "untouched fields survive a partial update")
}

func TestUpdateTechnicalDetailsWithoutExisting(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})

	collection := "Pop Up Parade"
	c, w := testContext(t, "PUT", "/v1/product/technical-details", TechnicalDetailsRequest{
		Collection: &collection,
	}, &seller)
	setParam(c, "id", product.ID)
	UpdateTechnicalDetails(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchByTechnicalDetails(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)

	kurisu := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})
	attachDetails(t, kurisu, models.ProductTechnicalDetails{
		Manufacturer: "Good Smile Company",
		AnimeSeries:  "Steins;Gate",
		Character:    "Makise Kurisu",
	})

	rem := createProductFor(t, seller, "Rem", []string{"https://cdn.example.com/b.jpg"})
	attachDetails(t, rem, models.ProductTechnicalDetails{
		Manufacturer: "Good Smile Company",
		AnimeSeries:  "Re:Zero",
		Character:    "Rem",
	})

	hidden := createProductFor(t, seller, "Kurisu Lab Coat", []string{"https://cdn.example.com/c.jpg"})
	attachDetails(t, hidden, models.ProductTechnicalDetails{
		AnimeSeries: "Steins;Gate",
	})
	require.NoError(t, config.DB.Model(&hidden).Update("status", false).Error)

	c, w := testContext(t, "GET", "/v1/technical-details/search?anime_series=steins", nil, nil)
	SearchByTechnicalDetails(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	products := body["data"].(map[string]interface{})["products"].([]interface{})
	require.Len(t, products, 1, "inactive products stay out of search results")
	got := products[0].(map[string]interface{})
	assert.Equal(t, float64(kurisu.ID), got["id"])

	// Filters are AND-combined
	c, w = testContext(t, "GET", "/v1/technical-details/search?manufacturer=good+smile&character=rem", nil, nil)
	SearchByTechnicalDetails(c)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	products = body["data"].(map[string]interface{})["products"].([]interface{})
	require.Len(t, products, 1)
	got = products[0].(map[string]interface{})
	assert.Equal(t, float64(rem.ID), got["id"])
}
