package domain

import (
	"time"
)

// Category adalah enum kategori produk yang didukung katalog.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryHome        Category = "Home"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryClothing, CategoryBooks, CategoryHome:
		return true
	}
	return false
}

type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Brand         string     `json:"brand"`
	SKU           string     `json:"sku"`
	Category      Category   `json:"category"`
	Price         float64    `json:"price"` // Menggunakan float untuk kemudahan, decimal lebih baik untuk uang. Nilai tersimpan sudah post-discount.
	ReleaseDate   time.Time  `json:"release_date"`
	ImageURL      *string    `json:"image_url,omitempty"` // Pointer agar bisa null
	IsAvailable   bool       `json:"is_available"`
	StockQuantity int        `json:"stock_quantity"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"` // Null sampai produk pertama kali diupdate
}

// CreateProductRequest sengaja tanpa binding tag "required": semua aturan
// dievaluasi validator di service layer supaya seluruh pelanggaran dilaporkan
// sekaligus, bukan dipotong satu-satu oleh Gin binding.
type CreateProductRequest struct {
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	SKU           string    `json:"sku"`
	Category      Category  `json:"category"`
	Price         float64   `json:"price"`
	ReleaseDate   time.Time `json:"release_date"`
	ImageURL      *string   `json:"image_url,omitempty"`
	StockQuantity *int      `json:"stock_quantity,omitempty"`
}

// Stock mengembalikan stock quantity efektif. Default 1 jika client tidak mengirim.
func (r CreateProductRequest) Stock() int {
	if r.StockQuantity == nil {
		return 1
	}
	return *r.StockQuantity
}

// ProductProfile adalah DTO response: salinan field tersimpan plus field
// display yang dihitung ulang setiap proyeksi (tidak pernah di-cache).
type ProductProfile struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Brand         string     `json:"brand"`
	SKU           string     `json:"sku"`
	Category      Category   `json:"category"`
	Price         float64    `json:"price"`
	ReleaseDate   time.Time  `json:"release_date"`
	ImageURL      *string    `json:"image_url,omitempty"`
	IsAvailable   bool       `json:"is_available"`
	StockQuantity int        `json:"stock_quantity"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`

	CategoryDisplayName string `json:"category_display_name"`
	FormattedPrice      string `json:"formatted_price"`
	ProductAge          string `json:"product_age"`
	BrandInitials       string `json:"brand_initials"`
	AvailabilityStatus  string `json:"availability_status"`
}
