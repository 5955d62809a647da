package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sparkeq/catalog/internal/domain"
	"github.com/sparkeq/catalog/pkg/database"
	apperrors "github.com/sparkeq/catalog/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product row and its category associations within a
// single transaction. The database assigns id and created_at; both are set
// on the passed product before returning.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO products (name, rating, featured, expiration_date, items_in_stock, receipt_date, brand_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err = tx.QueryRow(ctx, query,
		p.Name,
		p.Rating,
		p.Featured,
		p.ExpirationDate,
		p.ItemsInStock,
		p.ReceiptDate,
		p.BrandID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	if err := insertCategoryAssociations(ctx, tx, p.ID, p.Categories); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit product create: %w", err)
	}

	return nil
}

// GetByID retrieves a product aggregate by its id.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.rating, p.featured, p.expiration_date, p.items_in_stock, p.receipt_date, p.created_at,
		       b.id, b.name, b.country_code
		FROM products p
		JOIN brands b ON b.id = p.brand_id
		WHERE p.id = $1`

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Rating,
		&p.Featured,
		&p.ExpirationDate,
		&p.ItemsInStock,
		&p.ReceiptDate,
		&p.CreatedAt,
		&p.Brand.ID,
		&p.Brand.Name,
		&p.Brand.CountryCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Product", "id")
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.BrandID = p.Brand.ID

	categories, err := r.loadCategories(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Categories = categories

	return &p, nil
}

// List returns every product aggregate. Categories for all returned rows are
// loaded with a single batch query.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.rating, p.featured, p.expiration_date, p.items_in_stock, p.receipt_date, p.created_at,
		       b.id, b.name, b.country_code
		FROM products p
		JOIN brands b ON b.id = p.brand_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Rating,
			&p.Featured,
			&p.ExpirationDate,
			&p.ItemsInStock,
			&p.ReceiptDate,
			&p.CreatedAt,
			&p.Brand.ID,
			&p.Brand.Name,
			&p.Brand.CountryCode,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		p.BrandID = p.Brand.ID
		p.Categories = []domain.Category{}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if len(products) == 0 {
		return []domain.Product{}, nil
	}

	// Batch-load category associations for all returned products.
	productIDs := make([]int64, len(products))
	index := make(map[int64]*domain.Product, len(products))
	for i := range products {
		productIDs[i] = products[i].ID
		index[products[i].ID] = &products[i]
	}

	assocQuery := `
		SELECT pc.product_id, c.id, c.name
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.product_id = ANY($1)
		ORDER BY c.id`

	assocRows, err := r.pool.Query(ctx, assocQuery, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list product categories: %w", err)
	}
	defer assocRows.Close()

	for assocRows.Next() {
		var (
			productID int64
			c         domain.Category
		)
		if err := assocRows.Scan(&productID, &c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan product category row: %w", err)
		}
		if p, ok := index[productID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}

	if err := assocRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product category rows: %w", err)
	}

	return products, nil
}

// Update overwrites the product row and replaces its category associations
// wholesale, within a single transaction. created_at is never touched.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE products
		SET name = $1, rating = $2, featured = $3, expiration_date = $4,
		    items_in_stock = $5, receipt_date = $6, brand_id = $7
		WHERE id = $8`

	ct, err := tx.Exec(ctx, query,
		p.Name,
		p.Rating,
		p.Featured,
		p.ExpirationDate,
		p.ItemsInStock,
		p.ReceiptDate,
		p.BrandID,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Product", "id")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM product_categories WHERE product_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear product categories: %w", err)
	}

	if err := insertCategoryAssociations(ctx, tx, p.ID, p.Categories); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit product update: %w", err)
	}

	return nil
}

// Delete removes a product row by its id. Association rows cascade via the
// product_categories foreign key; brand and category rows are untouched.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("Product", "id")
	}

	return nil
}

// loadCategories returns the categories associated with one product.
func (r *ProductRepository) loadCategories(ctx context.Context, productID int64) ([]domain.Category, error) {
	query := `
		SELECT c.id, c.name
		FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		WHERE pc.product_id = $1
		ORDER BY c.id`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("load product categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}

	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

// insertCategoryAssociations writes one association row per category inside
// the given transaction.
func insertCategoryAssociations(ctx context.Context, tx pgx.Tx, productID int64, categories []domain.Category) error {
	for _, c := range categories {
		_, err := tx.Exec(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			productID, c.ID,
		)
		if err != nil {
			return fmt.Errorf("insert product category %d: %w", c.ID, err)
		}
	}
	return nil
}
