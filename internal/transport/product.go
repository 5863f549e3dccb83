package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/printshop/internal/models"
)

// ProductRequest is used for create and partial update; nil fields are
// left unchanged on update.
type ProductRequest struct {
	Name            *string               `json:"name"`
	Description     *string               `json:"description"`
	Price           *decimal.Decimal      `json:"price"`
	SKU             *string               `json:"sku"`
	Category        *string               `json:"category"`
	Collections     *string               `json:"collections"`
	Sizes           []string              `json:"sizes"`
	TextColors      []string              `json:"textColors"`
	BaseColors      []string              `json:"baseColors"`
	Images          []models.ProductImage `json:"images"`
	IsFeatured      *bool                 `json:"isFeatured"`
	IsPublished     *bool                 `json:"isPublished"`
	MetaTitle       *string               `json:"metaTitle"`
	MetaDescription *string               `json:"metaDescription"`
	MetaKeywords    *string               `json:"metaKeywords"`
}

// ProductQuery holds the catalogue filters from the query string.
type ProductQuery struct {
	Collection string `query:"collection"`
	Category   string `query:"category"`
	Size       string `query:"size"`
	Color      string `query:"color"`
	MinPrice   string `query:"minPrice"`
	MaxPrice   string `query:"maxPrice"`
	Search     string `query:"search"`
	SortBy     string `query:"sortBy"`
	Limit      string `query:"limit"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type ProductPage struct {
	Data []models.Product `json:"data"`
	Meta PageMeta         `json:"meta"`
}
