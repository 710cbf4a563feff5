package domain

import "time"

type ProductImage struct {
	URL     string `bson:"url" json:"url"`
	AltText string `bson:"alt_text,omitempty" json:"altText,omitempty"`
}

type Product struct {
	ID           string         `bson:"_id" json:"id"`
	Name         string         `bson:"name" json:"name"`
	Description  string         `bson:"description" json:"description"`
	Price        float64        `bson:"price" json:"price"`
	CountInStock int            `bson:"count_in_stock" json:"countInStock"`
	Category     string         `bson:"category,omitempty" json:"category,omitempty"`
	Brand        string         `bson:"brand,omitempty" json:"brand,omitempty"`
	Sizes        []string       `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Colors       []string       `bson:"colors,omitempty" json:"colors,omitempty"`
	Images       []ProductImage `bson:"images,omitempty" json:"images,omitempty"`
	SKU          string         `bson:"sku,omitempty" json:"sku,omitempty"`
	CreatedBy    string         `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt    time.Time      `bson:"created_at" json:"createdAt"`
}

// FirstImage returns the URL snapshotted onto cart lines at add time.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
