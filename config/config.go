package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultProductImageLimit bounds the image set of a product when
// PRODUCT_IMAGE_LIMIT is not configured.
const DefaultProductImageLimit = 5

// Config holds all configuration for the application
type Config struct {
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	JWTSecret          string
	Port               string
	Env                string
	CloudinaryName     string
	CloudinaryKey      string
	CloudinarySecret   string
	StripeSecretKey    string
	MediaFolder        string
	ProductImageLimit  int
}

// LoadConfig loads configuration from environment variables. A missing
// .env file is not an error; the process environment still applies.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		Port:              os.Getenv("PORT"),
		Env:               os.Getenv("ENV"),
		CloudinaryName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:     os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret:  os.Getenv("CLOUDINARY_API_SECRET"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		MediaFolder:       os.Getenv("MEDIA_FOLDER"),
		ProductImageLimit: ProductImageLimit(),
	}
	if config.MediaFolder == "" {
		config.MediaFolder = "kurisushop_media"
	}

	return config, nil
}

// ProductImageLimit returns the configured maximum number of images per
// product.
func ProductImageLimit() int {
	raw := os.Getenv("PRODUCT_IMAGE_LIMIT")
	if raw == "" {
		return DefaultProductImageLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return DefaultProductImageLimit
	}
	return limit
}
