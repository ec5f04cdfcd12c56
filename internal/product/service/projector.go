package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ridloal/product-catalog-service/internal/product/domain"
)

// Semua resolver display di file ini adalah fungsi murni dari entity tersimpan
// plus jam saat ini. Tidak ada yang mengubah entity, jadi memproyeksikan produk
// yang sama dua kali dengan jam yang sama selalu menghasilkan profil identik.

const (
	ageNewReleaseDays = 30
	ageMonthDays      = 30
	ageYearDays       = 365
	ageClassicDays    = 1825
)

func categoryDisplayName(category domain.Category) string {
	switch category {
	case domain.CategoryElectronics:
		return "Electronics & Technology"
	case domain.CategoryClothing:
		return "Clothing & Fashion"
	case domain.CategoryBooks:
		return "Books & Media"
	case domain.CategoryHome:
		return "Home & Garden"
	default:
		return "Uncategorized"
	}
}

func formatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// productAge mengelompokkan umur produk sejak release date ke label display.
// Umur dihitung dalam hari pecahan supaya batas bucket konsisten dengan jam,
// bukan cuma tanggal kalender.
func productAge(releaseDate, now time.Time) string {
	days := now.Sub(releaseDate).Hours() / 24
	switch {
	case days < ageNewReleaseDays:
		return "New Release"
	case days < ageYearDays:
		return fmt.Sprintf("%d months old", int(days/ageMonthDays))
	case days < ageClassicDays:
		return fmt.Sprintf("%d years old", int(days/ageYearDays))
	case days == ageClassicDays:
		return "Classic"
	default:
		return "Vintage"
	}
}

// brandInitials mengambil inisial dari kata pertama (dan terakhir, kalau lebih
// dari satu kata) nama brand. Brand kosong atau whitespace semua jadi "?".
func brandInitials(brand string) string {
	words := strings.Fields(brand)
	if len(words) == 0 {
		return "?"
	}
	first := []rune(words[0])
	if len(words) == 1 {
		return strings.ToUpper(string(first[0]))
	}
	last := []rune(words[len(words)-1])
	return strings.ToUpper(string(first[0]) + string(last[0]))
}

// availabilityStatus menurunkan label ketersediaan. Flag is_available menang
// atas jumlah stok: produk yang ditandai tidak tersedia selalu "Out of Stock"
// berapapun stoknya.
func availabilityStatus(isAvailable bool, stockQuantity int) string {
	if !isAvailable {
		return "Out of Stock"
	}
	switch {
	case stockQuantity <= 0:
		return "Unavailable"
	case stockQuantity == 1:
		return "Last Item"
	case stockQuantity <= 5:
		return "Limited Stock"
	default:
		return "In Stock"
	}
}

// buildProfile menyusun profil display lengkap dari entity tersimpan. Field
// tersimpan disalin apa adanya; harga yang tersimpan sudah final (termasuk
// diskon kategori Home yang diterapkan saat konstruksi), jadi di sini tinggal
// diformat. Produk Home tidak menampilkan gambar sesuai kebijakan display.
func buildProfile(product *domain.Product, now time.Time) *domain.ProductProfile {
	imageURL := product.ImageURL
	if product.Category == domain.CategoryHome {
		imageURL = nil
	}
	return &domain.ProductProfile{
		ID:                  product.ID,
		Name:                product.Name,
		Brand:               product.Brand,
		SKU:                 product.SKU,
		Category:            product.Category,
		Price:               product.Price,
		ReleaseDate:         product.ReleaseDate,
		ImageURL:            imageURL,
		IsAvailable:         product.IsAvailable,
		StockQuantity:       product.StockQuantity,
		CreatedAt:           product.CreatedAt,
		UpdatedAt:           product.UpdatedAt,
		CategoryDisplayName: categoryDisplayName(product.Category),
		FormattedPrice:      formatPrice(product.Price),
		ProductAge:          productAge(product.ReleaseDate, now),
		BrandInitials:       brandInitials(product.Brand),
		AvailabilityStatus:  availabilityStatus(product.IsAvailable, product.StockQuantity),
	}
}

// roundToCents membulatkan nilai uang ke dua desimal terdekat.
func roundToCents(value float64) float64 {
	return math.Round(value*100) / 100
}
