package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/ridloal/product-catalog-service/internal/platform/logger"
	"github.com/ridloal/product-catalog-service/internal/product/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUConflict     = errors.New("product with this SKU already exists")
)

type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) error
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error)
	CountCreatedOn(ctx context.Context, day time.Time) (int, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

// Insert menyimpan produk dengan ID dan created_at yang sudah di-assign di
// service layer (bukan RETURNING dari DB). updated_at dibiarkan NULL sampai
// ada jalur update.
func (r *postgresProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (id, name, brand, sku, category, price, release_date, image_url, is_available, stock_quantity, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var imageURL sql.NullString
	if product.ImageURL != nil {
		imageURL = sql.NullString{String: *product.ImageURL, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Brand, product.SKU, product.Category,
		product.Price, product.ReleaseDate, imageURL, product.IsAvailable,
		product.StockQuantity, product.CreatedAt,
	)
	if err != nil {
		// Kode error '23505' adalah unique_violation; satu-satunya unique index
		// di tabel products ada di kolom sku
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			logger.Error("Insert: unique violation on sku "+product.SKU, err)
			return ErrSKUConflict
		}
		logger.Error("Insert: failed to insert product", err)
		return err
	}
	return nil
}

// existsBy mengecek keberadaan baris berdasarkan satu kolom. Nama kolom
// di-quote supaya aman disisipkan ke query.
func (r *postgresProductRepository) existsBy(ctx context.Context, field, value string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE ` + pq.QuoteIdentifier(field) + ` = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		logger.Error("ExistsBy "+field+": query failed", err)
		return false, err
	}
	return exists, nil
}

func (r *postgresProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return r.existsBy(ctx, "sku", sku)
}

func (r *postgresProductRepository) ExistsByNameAndBrand(ctx context.Context, name, brand string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE name = $1 AND brand = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, brand).Scan(&exists); err != nil {
		logger.Error("ExistsByNameAndBrand: query failed", err)
		return false, err
	}
	return exists, nil
}

// CountCreatedOn menghitung produk yang dibuat pada satu tanggal UTC.
// Pakai range start/end supaya index di created_at tetap terpakai.
func (r *postgresProductRepository) CountCreatedOn(ctx context.Context, day time.Time) (int, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	query := `SELECT COUNT(*) FROM products WHERE created_at >= $1 AND created_at < $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, start, end).Scan(&count); err != nil {
		logger.Error("CountCreatedOn: query failed", err)
		return 0, err
	}
	return count, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT id, name, brand, sku, category, price, release_date, image_url, is_available, stock_quantity, created_at, updated_at
              FROM products WHERE id = $1`
	var p domain.Product
	var imageURL sql.NullString
	var updatedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Brand, &p.SKU, &p.Category, &p.Price, &p.ReleaseDate,
		&imageURL, &p.IsAvailable, &p.StockQuantity, &p.CreatedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	return &p, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, name, brand, sku, category, price, release_date, image_url, is_available, stock_quantity, created_at, updated_at
              FROM products ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		var imageURL sql.NullString
		var updatedAt sql.NullTime
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Brand, &p.SKU, &p.Category, &p.Price, &p.ReleaseDate,
			&imageURL, &p.IsAvailable, &p.StockQuantity, &p.CreatedAt, &updatedAt,
		); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		if imageURL.Valid {
			p.ImageURL = &imageURL.String
		}
		if updatedAt.Valid {
			p.UpdatedAt = &updatedAt.Time
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err)
		return nil, err
	}
	return products, nil
}
