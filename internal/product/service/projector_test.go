package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ridloal/product-catalog-service/internal/product/domain"
)

func TestProductAge(t *testing.T) {
	now := fixedClock()

	cases := []struct {
		name    string
		release time.Time
		want    string
	}{
		{"Ten days old is a new release", now.AddDate(0, 0, -10), "New Release"},
		{"Just under thirty days is still a new release", now.Add(-30*24*time.Hour + time.Hour), "New Release"},
		{"Forty-five days rounds down to one month", now.AddDate(0, 0, -45), "1 months old"},
		{"Three hundred sixty-four days is twelve months", now.AddDate(0, 0, -364), "12 months old"},
		{"Four hundred days rounds down to one year", now.AddDate(0, 0, -400), "1 years old"},
		{"Just under five years is four years", now.AddDate(0, 0, -1824), "4 years old"},
		{"Exactly 1825 days is a classic", now.AddDate(0, 0, -1825), "Classic"},
		{"Older than 1825 days is vintage", now.AddDate(0, 0, -1826), "Vintage"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, productAge(tc.release, now))
		})
	}
}

func TestBrandInitials(t *testing.T) {
	cases := []struct {
		name  string
		brand string
		want  string
	}{
		{"Two words take first and last initials", "Sony Electronics", "SE"},
		{"Single word takes one initial", "Acme", "A"},
		{"Lowercase brand is uppercased", "gramedia", "G"},
		{"Middle words are skipped", "Tokopedia Official Store", "TS"},
		{"Empty brand falls back to question mark", "", "?"},
		{"Whitespace-only brand falls back to question mark", "   ", "?"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, brandInitials(tc.brand))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$1234.50", formatPrice(1234.5))
	assert.Equal(t, "$0.10", formatPrice(0.1))
	assert.Equal(t, "$89.99", formatPrice(89.99))
}

func TestCategoryDisplayName(t *testing.T) {
	assert.Equal(t, "Electronics & Technology", categoryDisplayName(domain.CategoryElectronics))
	assert.Equal(t, "Clothing & Fashion", categoryDisplayName(domain.CategoryClothing))
	assert.Equal(t, "Books & Media", categoryDisplayName(domain.CategoryBooks))
	assert.Equal(t, "Home & Garden", categoryDisplayName(domain.CategoryHome))
	assert.Equal(t, "Uncategorized", categoryDisplayName(domain.Category("Toys")))
}

func TestAvailabilityStatus(t *testing.T) {
	t.Run("Unavailable flag wins over stock count", func(t *testing.T) {
		assert.Equal(t, "Out of Stock", availabilityStatus(false, 100))
	})

	t.Run("Stock buckets for available products", func(t *testing.T) {
		assert.Equal(t, "Unavailable", availabilityStatus(true, 0))
		assert.Equal(t, "Last Item", availabilityStatus(true, 1))
		assert.Equal(t, "Limited Stock", availabilityStatus(true, 5))
		assert.Equal(t, "In Stock", availabilityStatus(true, 6))
	})
}

func TestBuildProfile(t *testing.T) {
	now := fixedClock()
	imageURL := "https://cdn.example.com/pot.jpg"

	baseProduct := func() *domain.Product {
		return &domain.Product{
			ID:            "prod-1",
			Name:          "Ceramic Plant Pot",
			Brand:         "Garden Works",
			SKU:           "HOME-55555",
			Category:      domain.CategoryBooks,
			Price:         45.5,
			ReleaseDate:   now.AddDate(0, 0, -10),
			ImageURL:      &imageURL,
			IsAvailable:   true,
			StockQuantity: 3,
			CreatedAt:     now,
		}
	}

	t.Run("Profile copies stored fields and derives display fields", func(t *testing.T) {
		product := baseProduct()

		profile := buildProfile(product, now)

		assert.Equal(t, product.ID, profile.ID)
		assert.Equal(t, product.Price, profile.Price)
		assert.Equal(t, "Books & Media", profile.CategoryDisplayName)
		assert.Equal(t, "$45.50", profile.FormattedPrice)
		assert.Equal(t, "New Release", profile.ProductAge)
		assert.Equal(t, "GW", profile.BrandInitials)
		assert.Equal(t, "Limited Stock", profile.AvailabilityStatus)
		assert.Equal(t, &imageURL, profile.ImageURL)
	})

	t.Run("Home products hide the image in the profile", func(t *testing.T) {
		product := baseProduct()
		product.Category = domain.CategoryHome

		profile := buildProfile(product, now)

		assert.Nil(t, profile.ImageURL)
		// Entity tersimpan tetap punya gambar; yang disembunyikan cuma tampilan
		assert.NotNil(t, product.ImageURL)
	})

	t.Run("Projection is idempotent for a fixed clock", func(t *testing.T) {
		product := baseProduct()
		original := *product

		first := buildProfile(product, now)
		second := buildProfile(product, now)

		assert.Equal(t, first, second)
		assert.Equal(t, original, *product)
	})
}
