package controllers

import (
	"net/http"
	"testing"

	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProductFor(t *testing.T, seller models.User, name string, images []string) models.Product {
	t.Helper()

	c, w := testContext(t, "POST", "/v1/create", ProductRequest{
		Name:        name,
		Description: "1/7 scale figure",
		Price:       129.99,
		Images:      images,
	}, &seller)
	CreateProduct(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product models.Product
	require.NoError(t, productsWithImages(config.DB).Where("name = ?", name).First(&product).Error)
	return product
}

func TestCreateProductUploadsInlineImages(t *testing.T) {
	up := setupTest(t)
	seller := createUser(t, models.RoleSeller)

	product := createProductFor(t, seller, "Makise Kurisu", []string{
		"https://cdn.example.com/kurisu-front.jpg",
		"inline-payload-back",
		"inline-payload-side",
	})

	assert.Equal(t, 2, up.uploads, "hosted URLs must pass through without uploading")
	require.Len(t, product.Images, 3)
	assert.Equal(t, []string{
		"https://cdn.example.com/kurisu-front.jpg",
		"https://media.test/media-1.jpg",
		"https://media.test/media-2.jpg",
	}, product.ImageURLs(), "the stored set keeps the request order")
	assert.True(t, product.Status)
}

func TestCreateProductRequiresImages(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)

	c, w := testContext(t, "POST", "/v1/create", ProductRequest{
		Name:        "Makise Kurisu",
		Description: "1/7 scale figure",
		Price:       129.99,
		Images:      []string{},
	}, &seller)
	CreateProduct(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductRejectsTooManyImages(t *testing.T) {
	up := setupTest(t)
	seller := createUser(t, models.RoleSeller)

	images := make([]string, config.ProductImageLimit()+1)
	for i := range images {
		images[i] = "inline-payload"
	}

	c, w := testContext(t, "POST", "/v1/create", ProductRequest{
		Name:        "Makise Kurisu",
		Description: "1/7 scale figure",
		Price:       129.99,
		Images:      images,
	}, &seller)
	CreateProduct(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, up.uploads, "validation must run before any upload")
}

func TestCreateProductUploadFailureLeavesNothingBehind(t *testing.T) {
	up := setupTest(t)
	up.failAt = 2
	seller := createUser(t, models.RoleSeller)

	c, w := testContext(t, "POST", "/v1/create", ProductRequest{
		Name:        "Makise Kurisu",
		Description: "1/7 scale figure",
		Price:       129.99,
		Images:      []string{"inline-one", "inline-two", "inline-three"},
	}, &seller)
	CreateProduct(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no partial product may survive a failed batch")
	assert.Equal(t, []string{"media-1"}, up.destroyed, "finished uploads of the failed batch are torn down")
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})

	c, w := testContext(t, "POST", "/v1/create", ProductRequest{
		Name:        "makise kurisu",
		Description: "another listing",
		Price:       99.99,
		Images:      []string{"https://cdn.example.com/b.jpg"},
	}, &seller)
	CreateProduct(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Product name already exists", body["message"])
}

func TestCreateProductForbiddenForClients(t *testing.T) {
	setupTest(t)
	client := createUser(t, models.RoleClient)

	c, w := testContext(t, "POST", "/v1/create", ProductRequest{
		Name:        "Makise Kurisu",
		Description: "1/7 scale figure",
		Price:       129.99,
		Images:      []string{"https://cdn.example.com/a.jpg"},
	}, &client)
	CreateProduct(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetProductByIDHidesInactiveFromOthers(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	other := createUser(t, models.RoleClient)

	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})
	require.NoError(t, config.DB.Model(&product).Update("status", false).Error)

	// Anonymous
	c, w := testContext(t, "GET", "/v1/products", nil, nil)
	setParam(c, "id", product.ID)
	GetProductByID(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Authenticated non-owner
	c, w = testContext(t, "GET", "/v1/products", nil, &other)
	setParam(c, "id", product.ID)
	GetProductByID(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner still sees it
	c, w = testContext(t, "GET", "/v1/products", nil, &seller)
	setParam(c, "id", product.ID)
	GetProductByID(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetActiveProductsFiltersInactive(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)

	active := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})
	hidden := createProductFor(t, seller, "Mayuri Shiina", []string{"https://cdn.example.com/b.jpg"})
	require.NoError(t, config.DB.Model(&hidden).Update("status", false).Error)

	c, w := testContext(t, "GET", "/v1/products/actives", nil, nil)
	GetActiveProducts(c)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	products := body["data"].(map[string]interface{})["products"].([]interface{})
	require.Len(t, products, 1)
	got := products[0].(map[string]interface{})
	assert.Equal(t, float64(active.ID), got["id"])
}

func TestUpdateProductReplacesImageSet(t *testing.T) {
	up := setupTest(t)
	seller := createUser(t, models.RoleSeller)

	product := createProductFor(t, seller, "Makise Kurisu", []string{
		"https://cdn.example.com/old-1.jpg",
		"https://cdn.example.com/old-2.jpg",
	})

	images := []string{"inline-new", "https://cdn.example.com/kept.jpg"}
	c, w := testContext(t, "PUT", "/v1/selectproducttomodify", UpdateProductRequest{Images: &images}, &seller)
	setParam(c, "id", product.ID)
	UpdateProduct(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Product
	require.NoError(t, productsWithImages(config.DB).First(&stored, product.ID).Error)
	assert.Equal(t, []string{
		"https://media.test/media-1.jpg",
		"https://cdn.example.com/kept.jpg",
	}, stored.ImageURLs())
	assert.Equal(t, 1, up.uploads)
}

func TestUpdateProductKeepsImagesWhenAbsent(t *testing.T) {
	up := setupTest(t)
	seller := createUser(t, models.RoleSeller)

	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})

	price := 149.99
	c, w := testContext(t, "PUT", "/v1/selectproducttomodify", UpdateProductRequest{Price: &price}, &seller)
	setParam(c, "id", product.ID)
	UpdateProduct(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Product
	require.NoError(t, productsWithImages(config.DB).First(&stored, product.ID).Error)
	assert.Equal(t, 149.99, stored.Price)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, stored.ImageURLs())
	assert.Equal(t, 0, up.uploads)
}

func TestUpdateProductOwnershipEnforced(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)
	intruder := createUser(t, models.RoleSeller)

	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})

	name := "Stolen listing"
	c, w := testContext(t, "PUT", "/v1/selectproducttomodify", UpdateProductRequest{Name: &name}, &intruder)
	setParam(c, "id", product.ID)
	UpdateProduct(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChangeProductStatus(t *testing.T) {
	setupTest(t)
	seller := createUser(t, models.RoleSeller)

	product := createProductFor(t, seller, "Makise Kurisu", []string{"https://cdn.example.com/a.jpg"})

	status := false
	c, w := testContext(t, "PATCH", "/v1/selectproducttomodify", ChangeStatusRequest{Status: &status}, &seller)
	setParam(c, "id", product.ID)
	ChangeProductStatus(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Product
	require.NoError(t, config.DB.First(&stored, product.ID).Error)
	assert.False(t, stored.Status)
}
