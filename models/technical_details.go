package models

// ProductTechnicalDetails is the optional one-to-one extension of a
// product with figure-specific attributes.
type ProductTechnicalDetails struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ProductID    uint   `json:"product_id" gorm:"uniqueIndex;not null"`
	Manufacturer string `json:"manufacturer"`
	Collection   string `json:"collection"`
	AnimeSeries  string `json:"anime_series"`
	Character    string `json:"character"`
}
