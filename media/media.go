// Package media wraps the hosted media gateway the product controllers
// upload image payloads to. Uploads happen outside any database
// transaction, so callers that persist the returned URLs own the
// compensation of already-finished uploads when a later step fails.
package media

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/kurisushop/KurisuShop/utils"
)

// UploadResult identifies one hosted asset.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader is the media gateway contract. Destroy is best-effort for
// callers compensating a failed batch; they ignore its error.
type Uploader interface {
	Upload(ctx context.Context, payload, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryUploader implements Uploader against Cloudinary.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds an uploader from the Cloudinary credentials.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %v", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload sends an inline payload (base64/data URI) to the gateway and
// returns the hosted URL plus the id needed to destroy it later.
func (u *CloudinaryUploader) Upload(ctx context.Context, payload, folder string) (*UploadResult, error) {
	resp, err := u.cld.Upload.Upload(ctx, payload, uploader.UploadParams{Folder: folder})
	if err != nil {
		return nil, utils.NewAppError(http.StatusBadGateway, "Media gateway upload failed", err)
	}
	return &UploadResult{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Destroy removes a hosted asset.
func (u *CloudinaryUploader) Destroy(ctx context.Context, publicID string) error {
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return utils.WrapError(err, fmt.Sprintf("failed to destroy media %s", publicID))
}
