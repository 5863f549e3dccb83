package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ProductImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

type Product struct {
	Base
	Name            string                            `gorm:"not null"                json:"name"`
	Description     string                            `gorm:"type:text;not null"      json:"description"`
	Price           decimal.Decimal                   `gorm:"type:numeric(12,2);not null" json:"price"`
	SKU             string                            `gorm:"uniqueIndex;not null"    json:"sku"`
	Category        string                            `gorm:"index;not null"          json:"category"`
	Collections     string                            `gorm:"index"                   json:"collections"`
	Sizes           StringArray                       `json:"sizes"`
	TextColors      StringArray                       `json:"textColors"`
	BaseColors      StringArray                       `json:"baseColors"`
	Images          datatypes.JSONSlice[ProductImage] `json:"images"`
	IsFeatured      bool                              `json:"isFeatured"`
	IsPublished     bool                              `json:"isPublished"`
	Rating          float64                           `json:"rating"`
	NumReviews      int                               `json:"numReviews"`
	UserID          uuid.UUID                         `gorm:"type:uuid"               json:"user"`
	MetaTitle       string                            `json:"metaTitle,omitempty"`
	MetaDescription string                            `json:"metaDescription,omitempty"`
	MetaKeywords    string                            `json:"metaKeywords,omitempty"`
}

// FirstImage returns the url of the first image, or "".
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
