package models

import (
	"time"
)

// Product is a listing owned by one seller. Images is an ordered set,
// bounded by the configured image limit at the controller level.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"uniqueIndex;not null"`
	Description string         `json:"description" gorm:"not null"`
	Price       float64        `json:"price" gorm:"not null"`
	Review      *float64       `json:"review"`
	UserID      uint           `json:"user_id" gorm:"not null;index"`
	User        User           `json:"-" gorm:"foreignKey:UserID"`
	Status      bool           `json:"status" gorm:"default:true"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	TechnicalDetails *ProductTechnicalDetails `json:"technical_details,omitempty" gorm:"foreignKey:ProductID"`
	Reviews          []Review                 `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductImage is one hosted image URL of a product. Position keeps the
// order the client sent the set in.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"index"`
	URL       string `json:"url" gorm:"not null"`
	Position  int    `json:"position" gorm:"not null;default:0"`
}

// ImageURLs returns the image URLs in stored order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
