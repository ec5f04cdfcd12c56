package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/ridloal/product-catalog-service/internal/platform/config"
	"github.com/ridloal/product-catalog-service/internal/platform/logger"
	"github.com/ridloal/product-catalog-service/internal/platform/metrics"
	"github.com/ridloal/product-catalog-service/internal/product/domain"
	"github.com/ridloal/product-catalog-service/internal/product/repository"
)

var (
	ErrDuplicateSKU          = errors.New("product with this SKU already exists")
	ErrProductCreationFailed = errors.New("product creation failed")
)

// Key cache untuk daftar produk. Profil tidak pernah di-cache karena
// field turunannya (umur produk, status ketersediaan) bergantung pada jam.
const productsCacheKey = "products:all"

const homeDiscountRate = 0.10

// CacheClient adalah kontrak cache yang dibutuhkan service ini,
// diimplementasikan oleh platform/cache.
type CacheClient interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

type ProductService interface {
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.ProductProfile, error)
	GetProductDetails(ctx context.Context, productID string) (*domain.ProductProfile, error)
	ListProducts(ctx context.Context) ([]domain.ProductProfile, error)
	ProcessDailyStats(ctx context.Context)
}

type productServiceImpl struct {
	repo      repository.ProductRepository
	validator *Validator
	cache     CacheClient
	recorder  metrics.Recorder
	policy    config.ProductPolicy
	scheduler *cron.Cron
	now       func() time.Time
}

func NewProductService(repo repository.ProductRepository, cache CacheClient, recorder metrics.Recorder, policy config.ProductPolicy) ProductService {
	s := &productServiceImpl{
		repo:      repo,
		validator: NewValidator(repo, policy, nil),
		cache:     cache,
		recorder:  recorder,
		policy:    policy,
		scheduler: cron.New(cron.WithSeconds()),
		now:       time.Now,
	}
	s.initScheduler()
	return s
}

// initScheduler menjalankan job statistik harian tiap jam.
func (s *productServiceImpl) initScheduler() {
	spec := "0 0 * * * *" // format dengan detik: tiap awal jam
	if _, err := s.scheduler.AddFunc(spec, func() {
		s.ProcessDailyStats(context.Background())
	}); err != nil {
		logger.Error("Svc.initScheduler: failed to register daily stats job", err)
		return
	}
	s.scheduler.Start()
	logger.Info("Svc.initScheduler: daily stats job scheduled with spec %q", spec)
}

// StopScheduler menghentikan job terjadwal, dipakai saat shutdown dan di tes.
func (s *productServiceImpl) StopScheduler() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// buildProduct menyusun entity dari request yang sudah lolos validasi.
// Identitas dan timestamp ditetapkan di sini, bukan di database, supaya
// entity yang dikembalikan ke pemanggil sama persis dengan yang tersimpan.
// Diskon kategori Home diterapkan sekali di sini; harga tersimpan sudah final.
func buildProduct(req domain.CreateProductRequest, now time.Time) *domain.Product {
	price := req.Price
	if req.Category == domain.CategoryHome {
		price = roundToCents(price * (1 - homeDiscountRate))
	}
	stock := req.Stock()
	return &domain.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Brand:         req.Brand,
		SKU:           req.SKU,
		Category:      req.Category,
		Price:         price,
		ReleaseDate:   req.ReleaseDate.UTC(),
		ImageURL:      req.ImageURL,
		IsAvailable:   stock > 0,
		StockQuantity: stock,
		CreatedAt:     now,
	}
}

// CreateProduct menjalankan alur lengkap pembuatan produk: validasi, guard
// duplikat SKU, konstruksi entity, simpan, invalidasi cache, proyeksi profil,
// lalu catat metric. Request yang gagal validasi mengembalikan
// *domain.ValidationError berisi semua pelanggaran.
func (s *productServiceImpl) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.ProductProfile, error) {
	opID := uuid.NewString()
	start := s.now()

	record := metrics.CreationRecord{
		OperationID: opID,
		ProductName: req.Name,
		SKU:         req.SKU,
		Category:    string(req.Category),
	}

	validationStart := s.now()
	err := s.validator.Validate(ctx, req)
	record.ValidationDurationMs = s.now().Sub(validationStart).Milliseconds()
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			s.recordFailure(&record, start, "validation failed")
			return nil, validationErr
		}
		logger.Error("Svc.CreateProduct[%s]: validation store check error", err, opID)
		s.recordFailure(&record, start, "validation store check error")
		return nil, fmt.Errorf("%w: %v", ErrProductCreationFailed, err)
	}

	// Guard duplikat SKU yang berdiri sendiri di luar validator, supaya alur
	// create tetap aman kalau rule uniqueness di validator berubah.
	exists, err := s.repo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		logger.Error("Svc.CreateProduct[%s]: sku existence check failed", err, opID)
		s.recordFailure(&record, start, "sku existence check failed")
		return nil, fmt.Errorf("%w: %v", ErrProductCreationFailed, err)
	}
	if exists {
		s.recordFailure(&record, start, "duplicate SKU")
		return nil, ErrDuplicateSKU
	}

	product := buildProduct(req, s.now().UTC())

	dbStart := s.now()
	err = s.repo.Insert(ctx, product)
	record.DBDurationMs = s.now().Sub(dbStart).Milliseconds()
	if err != nil {
		// Race antara cek duplikat dan insert ditangkap unique index di DB.
		if errors.Is(err, repository.ErrSKUConflict) {
			s.recordFailure(&record, start, "duplicate SKU")
			return nil, ErrDuplicateSKU
		}
		logger.Error("Svc.CreateProduct[%s]: failed to insert product", err, opID)
		s.recordFailure(&record, start, "insert failed")
		return nil, fmt.Errorf("%w: %v", ErrProductCreationFailed, err)
	}

	// Invalidasi cache daftar produk. Best-effort: kegagalan di sini tidak
	// menggagalkan create karena produk sudah tersimpan; worst case daftar
	// basi sampai TTL habis.
	if err := s.cache.Delete(ctx, productsCacheKey); err != nil {
		logger.Warn("Svc.CreateProduct[%s]: failed to invalidate product list cache: %v", opID, err)
	}

	profile := buildProfile(product, s.now().UTC())

	record.TotalDurationMs = s.now().Sub(start).Milliseconds()
	record.Success = true
	s.recorder.RecordCreation(record)

	return profile, nil
}

func (s *productServiceImpl) recordFailure(record *metrics.CreationRecord, start time.Time, reason string) {
	record.TotalDurationMs = s.now().Sub(start).Milliseconds()
	record.Success = false
	record.ErrorReason = reason
	s.recorder.RecordCreation(*record)
}

// GetProductDetails memproyeksikan satu produk ke profil display-nya.
func (s *productServiceImpl) GetProductDetails(ctx context.Context, productID string) (*domain.ProductProfile, error) {
	product, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return buildProfile(product, s.now().UTC()), nil
}

// ListProducts membaca daftar produk lewat cache (cache-aside). Yang di-cache
// adalah entity mentah; proyeksi ke profil selalu dihitung ulang per request
// karena hasilnya bergantung pada jam.
func (s *productServiceImpl) ListProducts(ctx context.Context) ([]domain.ProductProfile, error) {
	var products []domain.Product
	hit, err := s.cache.Get(ctx, productsCacheKey, &products)
	if err != nil {
		logger.Warn("Svc.ListProducts: cache read failed: %v", err)
	}
	if !hit {
		products, err = s.repo.ListProducts(ctx)
		if err != nil {
			logger.Error("Svc.ListProducts: failed to list products", err)
			return nil, err
		}
		if err := s.cache.Set(ctx, productsCacheKey, products); err != nil {
			logger.Warn("Svc.ListProducts: cache write failed: %v", err)
		}
	}

	now := s.now().UTC()
	profiles := make([]domain.ProductProfile, len(products))
	for i := range products {
		profiles[i] = *buildProfile(&products[i], now)
	}
	return profiles, nil
}

// ProcessDailyStats melaporkan pemakaian kuota pembuatan produk hari ini.
// Dipanggil scheduler tiap jam dan bisa dipanggil manual.
func (s *productServiceImpl) ProcessDailyStats(ctx context.Context) {
	count, err := s.repo.CountCreatedOn(ctx, s.now().UTC())
	if err != nil {
		logger.Error("Svc.ProcessDailyStats: failed to count today's creations", err)
		return
	}
	remaining := s.policy.DailyCreateLimit - count
	if remaining < 0 {
		remaining = 0
	}
	logger.Info("Svc.ProcessDailyStats: %d products created today, %d remaining of daily limit %d", count, remaining, s.policy.DailyCreateLimit)
	if count >= s.policy.DailyCreateLimit {
		logger.Warn("Svc.ProcessDailyStats: daily creation limit reached, new products will be rejected until tomorrow")
	}
}
