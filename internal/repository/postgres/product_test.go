package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkeq/catalog/internal/domain"
	"github.com/sparkeq/catalog/pkg/database"
	apperrors "github.com/sparkeq/catalog/pkg/errors"
)

// --- Test Helpers ---

func newTestRepo(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewProductRepository(mock)
	return repo, mock
}

func sampleProduct() *domain.Product {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Product{
		ID:             1,
		Name:           "Aged Gouda",
		Rating:         8.5,
		Featured:       true,
		ExpirationDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ItemsInStock:   120,
		ReceiptDate:    time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		CreatedAt:      created,
		BrandID:        3,
		Brand:          domain.Brand{ID: 3, Name: "Dairyland", CountryCode: "NL"},
		Categories: []domain.Category{
			{ID: 2, Name: "Cheese"},
			{ID: 5, Name: "Imported"},
		},
	}
}

func productColumns() []string {
	return []string{
		"id", "name", "rating", "featured", "expiration_date", "items_in_stock",
		"receipt_date", "created_at", "id", "name", "country_code",
	}
}

func productRow(p *domain.Product) *pgxmock.Rows {
	return pgxmock.NewRows(productColumns()).AddRow(
		p.ID, p.Name, p.Rating, p.Featured, p.ExpirationDate, p.ItemsInStock,
		p.ReceiptDate, p.CreatedAt, p.Brand.ID, p.Brand.Name, p.Brand.CountryCode,
	)
}

func categoryRows(categories []domain.Category) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "name"})
	for _, c := range categories {
		rows.AddRow(c.ID, c.Name)
	}
	return rows
}

// --- Create Tests ---

func TestProductRepository_Create_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	p := sampleProduct()
	p.ID = 0
	p.CreatedAt = time.Time{}

	mock.ExpectBegin()

	mock.ExpectQuery("INSERT INTO products").
		WithArgs(p.Name, p.Rating, p.Featured, p.ExpirationDate, p.ItemsInStock, p.ReceiptDate, p.BrandID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(42), time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))

	for _, c := range p.Categories {
		mock.ExpectExec("INSERT INTO product_categories").
			WithArgs(int64(42), c.ID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	mock.ExpectCommit()

	err := repo.Create(context.Background(), p)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_BeginError(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), sampleProduct())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_InsertError(t *testing.T) {
	repo, mock := newTestRepo(t)

	p := sampleProduct()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO products").
		WithArgs(p.Name, p.Rating, p.Featured, p.ExpirationDate, p.ItemsInStock, p.ReceiptDate, p.BrandID).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), p)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert product")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_AssociationError(t *testing.T) {
	repo, mock := newTestRepo(t)

	p := sampleProduct()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO products").
		WithArgs(p.Name, p.Rating, p.Featured, p.ExpirationDate, p.ItemsInStock, p.ReceiptDate, p.BrandID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(42), time.Now()))

	mock.ExpectExec("INSERT INTO product_categories").
		WithArgs(int64(42), p.Categories[0].ID).
		WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), p)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert product category")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- GetByID Tests ---

func TestProductRepository_GetByID_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	want := sampleProduct()

	mock.ExpectQuery("SELECT (.+) FROM products p").
		WithArgs(want.ID).
		WillReturnRows(productRow(want))

	mock.ExpectQuery("SELECT (.+) FROM categories c").
		WithArgs(want.ID).
		WillReturnRows(categoryRows(want.Categories))

	got, err := repo.GetByID(context.Background(), want.ID)
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Brand, got.Brand)
	assert.Equal(t, want.Brand.ID, got.BrandID)
	assert.Equal(t, want.Categories, got.Categories)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM products p").
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 999)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Product not found", appErr.Message)
	assert.Equal(t, "id", appErr.Field)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NoCategories(t *testing.T) {
	repo, mock := newTestRepo(t)

	want := sampleProduct()
	want.Categories = nil

	mock.ExpectQuery("SELECT (.+) FROM products p").
		WithArgs(want.ID).
		WillReturnRows(productRow(want))

	mock.ExpectQuery("SELECT (.+) FROM categories c").
		WithArgs(want.ID).
		WillReturnRows(categoryRows(nil))

	got, err := repo.GetByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Categories)
	assert.NotNil(t, got.Categories)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- List Tests ---

func TestProductRepository_List_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	p1 := sampleProduct()
	p2 := sampleProduct()
	p2.ID = 2
	p2.Name = "Brie"
	p2.Categories = []domain.Category{{ID: 2, Name: "Cheese"}}

	rows := pgxmock.NewRows(productColumns())
	for _, p := range []*domain.Product{p1, p2} {
		rows.AddRow(
			p.ID, p.Name, p.Rating, p.Featured, p.ExpirationDate, p.ItemsInStock,
			p.ReceiptDate, p.CreatedAt, p.Brand.ID, p.Brand.Name, p.Brand.CountryCode,
		)
	}

	mock.ExpectQuery("SELECT (.+) FROM products p").
		WillReturnRows(rows)

	assocRows := pgxmock.NewRows([]string{"product_id", "id", "name"}).
		AddRow(p1.ID, int64(2), "Cheese").
		AddRow(p1.ID, int64(5), "Imported").
		AddRow(p2.ID, int64(2), "Cheese")

	mock.ExpectQuery("SELECT (.+) FROM product_categories pc").
		WithArgs([]int64{p1.ID, p2.ID}).
		WillReturnRows(assocRows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, p1.Categories, got[0].Categories)
	assert.Equal(t, p2.Categories, got[1].Categories)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_Empty(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM products p").
		WillReturnRows(pgxmock.NewRows(productColumns()))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_QueryError(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM products p").
		WillReturnError(errors.New("connection reset"))

	got, err := repo.List(context.Background())
	assert.Nil(t, got)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "list products")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- Update Tests ---

func TestProductRepository_Update_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	p := sampleProduct()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(p.Name, p.Rating, p.Featured, p.ExpirationDate, p.ItemsInStock, p.ReceiptDate, p.BrandID, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM product_categories").
		WithArgs(p.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	for _, c := range p.Categories {
		mock.ExpectExec("INSERT INTO product_categories").
			WithArgs(p.ID, c.ID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	err := repo.Update(context.Background(), p)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	p := sampleProduct()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(p.Name, p.Rating, p.Featured, p.ExpirationDate, p.ItemsInStock, p.ReceiptDate, p.BrandID, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_AssociationError(t *testing.T) {
	repo, mock := newTestRepo(t)

	p := sampleProduct()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WithArgs(p.Name, p.Rating, p.Featured, p.ExpirationDate, p.ItemsInStock, p.ReceiptDate, p.BrandID, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM product_categories").
		WithArgs(p.ID).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), p)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "clear product categories")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// --- Delete Tests ---

func TestProductRepository_Delete_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("DELETE FROM products").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), 1)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("DELETE FROM products").
		WithArgs(int64(999)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
