package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/media"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUploader stands in for the media gateway. failAt makes the n-th
// upload of the test fail (1-based); zero disables failures.
type fakeUploader struct {
	uploads   int
	destroyed []string
	failAt    int
}

func (f *fakeUploader) Upload(ctx context.Context, payload, folder string) (*media.UploadResult, error) {
	f.uploads++
	if f.failAt != 0 && f.uploads == f.failAt {
		return nil, fmt.Errorf("gateway rejected payload")
	}
	id := fmt.Sprintf("media-%d", f.uploads)
	return &media.UploadResult{URL: "https://media.test/" + id + ".jpg", PublicID: id}, nil
}

func (f *fakeUploader) Destroy(ctx context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

// setupTest wires an in-memory database and a fake media gateway into
// the package globals for one test.
func setupTest(t *testing.T) *fakeUploader {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection, or every pool connection gets its own empty db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateDB(db))
	config.DB = db

	up := &fakeUploader{}
	config.Media = up
	config.MediaFolder = "test_media"
	return up
}

var userSeq int

func createUser(t *testing.T, role models.Role) models.User {
	t.Helper()

	var rol models.Rol
	require.NoError(t, config.DB.Where("type = ?", role).First(&rol).Error)

	userSeq++
	user := models.User{
		UserName:  fmt.Sprintf("user%d", userSeq),
		FirstName: "Test",
		LastName:  "User",
		Email:     fmt.Sprintf("user%d@example.com", userSeq),
		Password:  "not-a-real-hash",
		RolID:     rol.ID,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	require.NoError(t, config.DB.Preload("Rol").First(&user, user.ID).Error)
	return user
}

// testContext builds a request context the way the middleware chain
// would have left it: JSON body attached and, if a user is given, the
// principal stored under "user".
func testContext(t *testing.T, method, path string, body interface{}, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if user != nil {
		c.Set("user", *user)
	}
	return c, w
}

func setParam(c *gin.Context, key string, value interface{}) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: fmt.Sprint(value)})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
