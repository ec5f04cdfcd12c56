package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ridloal/product-catalog-service/internal/platform/config"
	"github.com/ridloal/product-catalog-service/internal/product/domain"
	"github.com/ridloal/product-catalog-service/internal/product/repository"
)

const (
	nameMaxLength  = 200
	brandMinLength = 2
	brandMaxLength = 100

	priceMax = 10000.0
	stockMax = 100000

	expensivePriceThreshold = 100.0
	expensiveMaxStock       = 20
	highValuePriceThreshold = 500.0
	highValueMaxStock       = 10

	electronicsMinPrice    = 50.0
	electronicsMaxAgeYears = 5
	homeMaxPrice           = 200.0
	clothingBrandMinLength = 3
)

var (
	bannedNameWords     = []string{"fake", "test", "invalid"}
	techKeywords        = []string{"tech", "smart", "digital", "ai", "gadget", "electronic", "device"}
	restrictedHomeWords = []string{"weapon", "explosive", "restricted", "dangerous"}

	// Huruf, angka, whitespace, strip, titik, apostrof
	brandCharsRe = regexp.MustCompile(`^[A-Za-z0-9\s\-.']+$`)

	skuPatterns = map[config.SKUFormat]*regexp.Regexp{
		config.SKUFormatAlnum:   regexp.MustCompile(`^[A-Za-z0-9-]{5,20}$`),
		config.SKUFormatNumeric: regexp.MustCompile(`^[0-9]+$`),
	}

	imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	minReleaseDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// checkFunc adalah satu aturan murni terhadap request; storeCheckFunc adalah
// aturan yang butuh membaca store (uniqueness, daily limit). Keduanya
// mengembalikan daftar pelanggaran, bukan error, supaya evaluasi tidak
// short-circuit: semua masalah dilaporkan sekaligus ke client.
type checkFunc func(req domain.CreateProductRequest, now time.Time) []domain.Violation

type storeCheckFunc func(ctx context.Context, req domain.CreateProductRequest) ([]domain.Violation, error)

// Validator mengevaluasi CreateProductRequest terhadap daftar aturan berurut:
// aturan per field dulu, lalu aturan lintas field / kondisional kategori,
// terakhir aturan yang bergantung pada store. Urutan hanya menentukan urutan
// pesan, bukan hasil lolos/tidaknya.
type Validator struct {
	repo   repository.ProductRepository
	policy config.ProductPolicy
	now    func() time.Time

	fieldChecks []checkFunc
	crossChecks []checkFunc
	storeChecks []storeCheckFunc
}

// NewValidator membuat validator dengan kebijakan SKU/daily limit dari config.
// nowFn boleh nil (default time.Now); tes mengisi clock tetap lewat parameter ini.
func NewValidator(repo repository.ProductRepository, policy config.ProductPolicy, nowFn func() time.Time) *Validator {
	if nowFn == nil {
		nowFn = time.Now
	}
	v := &Validator{repo: repo, policy: policy, now: nowFn}
	v.fieldChecks = []checkFunc{
		v.checkName,
		v.checkBrand,
		v.checkSKUFormat,
		v.checkCategory,
		v.checkPrice,
		v.checkReleaseDate,
		v.checkStock,
		v.checkImageURL,
	}
	v.crossChecks = []checkFunc{
		v.checkExpensiveStock,
		v.checkElectronicsRules,
		v.checkHomeRules,
		v.checkClothingRules,
		v.checkHighValueStock,
	}
	v.storeChecks = []storeCheckFunc{
		v.checkNameBrandUnique,
		v.checkSKUUnique,
		v.checkDailyLimit,
	}
	return v
}

// Validate mengembalikan nil kalau lolos, *domain.ValidationError berisi semua
// pelanggaran kalau ada aturan yang gagal, atau error biasa kalau pengecekan
// ke store-nya sendiri yang gagal.
func (v *Validator) Validate(ctx context.Context, req domain.CreateProductRequest) error {
	now := v.now().UTC()
	violations := []domain.Violation{}

	for _, check := range v.fieldChecks {
		violations = append(violations, check(req, now)...)
	}
	for _, check := range v.crossChecks {
		violations = append(violations, check(req, now)...)
	}
	for _, check := range v.storeChecks {
		found, err := check(ctx, req)
		if err != nil {
			return fmt.Errorf("validation store check failed: %w", err)
		}
		violations = append(violations, found...)
	}

	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

// --- Field Rules ---

func (v *Validator) checkName(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if req.Name == "" {
		return []domain.Violation{{Field: "name", Message: "name is required"}}
	}
	var violations []domain.Violation
	if utf8.RuneCountInString(req.Name) > nameMaxLength {
		violations = append(violations, domain.Violation{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", nameMaxLength)})
	}
	if word, found := containsAny(req.Name, bannedNameWords); found {
		violations = append(violations, domain.Violation{Field: "name", Message: fmt.Sprintf("name must not contain the word %q", word)})
	}
	return violations
}

func (v *Validator) checkBrand(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if req.Brand == "" {
		return []domain.Violation{{Field: "brand", Message: "brand is required"}}
	}
	var violations []domain.Violation
	length := utf8.RuneCountInString(req.Brand)
	if length < brandMinLength || length > brandMaxLength {
		violations = append(violations, domain.Violation{Field: "brand", Message: fmt.Sprintf("brand must be between %d and %d characters", brandMinLength, brandMaxLength)})
	}
	if !brandCharsRe.MatchString(req.Brand) {
		violations = append(violations, domain.Violation{Field: "brand", Message: "brand may only contain letters, numbers, spaces, hyphens, periods and apostrophes"})
	}
	return violations
}

func (v *Validator) checkSKUFormat(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if req.SKU == "" {
		return []domain.Violation{{Field: "sku", Message: "sku is required"}}
	}
	if !skuPatterns[v.policy.SKUFormat].MatchString(req.SKU) {
		return []domain.Violation{{Field: "sku", Message: fmt.Sprintf("sku does not match the required format (%s)", v.policy.SKUFormat)}}
	}
	return nil
}

func (v *Validator) checkCategory(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if !req.Category.IsValid() {
		return []domain.Violation{{Field: "category", Message: "category must be one of Electronics, Clothing, Books, Home"}}
	}
	return nil
}

func (v *Validator) checkPrice(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if req.Price <= 0 {
		return []domain.Violation{{Field: "price", Message: "price must be greater than 0"}}
	}
	if req.Price >= priceMax {
		return []domain.Violation{{Field: "price", Message: fmt.Sprintf("price must be less than %.0f", priceMax)}}
	}
	return nil
}

func (v *Validator) checkReleaseDate(req domain.CreateProductRequest, now time.Time) []domain.Violation {
	var violations []domain.Violation
	if req.ReleaseDate.After(now) {
		violations = append(violations, domain.Violation{Field: "release_date", Message: "release date cannot be in the future"})
	}
	if !req.ReleaseDate.After(minReleaseDate) {
		violations = append(violations, domain.Violation{Field: "release_date", Message: "release date must be after 1900-01-01"})
	}
	return violations
}

func (v *Validator) checkStock(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	stock := req.Stock()
	if stock < 0 {
		return []domain.Violation{{Field: "stock_quantity", Message: "stock quantity cannot be negative"}}
	}
	if stock > stockMax {
		return []domain.Violation{{Field: "stock_quantity", Message: fmt.Sprintf("stock quantity must be at most %d", stockMax)}}
	}
	return nil
}

func (v *Validator) checkImageURL(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if req.ImageURL == nil {
		return nil
	}
	parsed, err := url.Parse(*req.ImageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return []domain.Violation{{Field: "image_url", Message: "image URL must be an absolute http or https URL"}}
	}
	path := strings.ToLower(parsed.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return nil
		}
	}
	return []domain.Violation{{Field: "image_url", Message: "image URL must point to an image file (jpg, jpeg, png, gif, webp)"}}
}

// --- Cross-field & Category Rules ---

func (v *Validator) checkExpensiveStock(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if req.Price > expensivePriceThreshold && req.Stock() > expensiveMaxStock {
		return []domain.Violation{{Field: domain.FieldCrossField, Message: "expensive products must have limited stock"}}
	}
	return nil
}

func (v *Validator) checkElectronicsRules(req domain.CreateProductRequest, now time.Time) []domain.Violation {
	if req.Category != domain.CategoryElectronics {
		return nil
	}
	var violations []domain.Violation
	if req.Price < electronicsMinPrice {
		violations = append(violations, domain.Violation{Field: "price", Message: fmt.Sprintf("electronics products must cost at least %.0f", electronicsMinPrice)})
	}
	if _, found := containsAny(req.Name, techKeywords); !found {
		violations = append(violations, domain.Violation{Field: "name", Message: "electronics product name must contain a technology keyword"})
	}
	if req.ReleaseDate.Before(now.AddDate(-electronicsMaxAgeYears, 0, 0)) {
		violations = append(violations, domain.Violation{Field: "release_date", Message: fmt.Sprintf("electronics products must have been released within the last %d years", electronicsMaxAgeYears)})
	}
	return violations
}

func (v *Validator) checkHomeRules(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if req.Category != domain.CategoryHome {
		return nil
	}
	var violations []domain.Violation
	if req.Price > homeMaxPrice {
		violations = append(violations, domain.Violation{Field: "price", Message: fmt.Sprintf("home products must cost at most %.0f", homeMaxPrice)})
	}
	if word, found := containsAny(req.Name, restrictedHomeWords); found {
		violations = append(violations, domain.Violation{Field: "name", Message: fmt.Sprintf("home product name must not contain the word %q", word)})
	}
	return violations
}

func (v *Validator) checkClothingRules(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if req.Category != domain.CategoryClothing {
		return nil
	}
	if utf8.RuneCountInString(req.Brand) < clothingBrandMinLength {
		return []domain.Violation{{Field: "brand", Message: fmt.Sprintf("clothing products require a brand of at least %d characters", clothingBrandMinLength)}}
	}
	return nil
}

func (v *Validator) checkHighValueStock(req domain.CreateProductRequest, _ time.Time) []domain.Violation {
	if req.Price > highValuePriceThreshold && req.Stock() > highValueMaxStock {
		return []domain.Violation{{Field: domain.FieldCrossField, Message: "high-value products must have limited stock"}}
	}
	return nil
}

// --- Store-dependent Rules ---

// checkNameBrandUnique menolak nama yang sudah dipakai brand yang sama.
// Dilewati kalau name/brand kosong karena sudah ditolak aturan field.
func (v *Validator) checkNameBrandUnique(ctx context.Context, req domain.CreateProductRequest) ([]domain.Violation, error) {
	if req.Name == "" || req.Brand == "" {
		return nil, nil
	}
	exists, err := v.repo.ExistsByNameAndBrand(ctx, req.Name, req.Brand)
	if err != nil {
		return nil, err
	}
	if exists {
		return []domain.Violation{{Field: "name", Message: "duplicate product name for this brand"}}, nil
	}
	return nil, nil
}

func (v *Validator) checkSKUUnique(ctx context.Context, req domain.CreateProductRequest) ([]domain.Violation, error) {
	if req.SKU == "" {
		return nil, nil
	}
	exists, err := v.repo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return []domain.Violation{{Field: "sku", Message: "duplicate SKU"}}, nil
	}
	return nil, nil
}

func (v *Validator) checkDailyLimit(ctx context.Context, _ domain.CreateProductRequest) ([]domain.Violation, error) {
	count, err := v.repo.CountCreatedOn(ctx, v.now().UTC())
	if err != nil {
		return nil, err
	}
	if count >= v.policy.DailyCreateLimit {
		return []domain.Violation{{Field: domain.FieldCrossField, Message: "daily limit reached"}}, nil
	}
	return nil, nil
}

// containsAny mengecek substring secara case-insensitive; mengembalikan kata
// pertama yang ketemu supaya bisa disebut di pesan pelanggaran.
func containsAny(s string, words []string) (string, bool) {
	lowered := strings.ToLower(s)
	for _, word := range words {
		if strings.Contains(lowered, word) {
			return word, true
		}
	}
	return "", false
}
