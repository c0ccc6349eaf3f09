package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bauxite/backend/internal/domain/catalog"
	"github.com/bauxite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSubtypeRepository_CombinationExists(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormSubtypeRepository(db)

	categoryID := uuid.New()
	mineID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "product_subtypes" WHERE \(name = \$1 AND category_id = \$2 AND mine_id = \$3\)`).
		WithArgs("Washed Bauxite", categoryID, mineID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.CombinationExists(context.Background(), "Washed Bauxite", categoryID, mineID, uuid.Nil)

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSubtypeRepository_FindByCriteria(t *testing.T) {
	t.Run("AND criteria", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSubtypeRepository(db)

		categoryID := uuid.New()
		mineID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "category_id", "mine_id"}).
			AddRow(uuid.New(), "Washed Bauxite", categoryID, mineID)

		mock.ExpectQuery(`SELECT \* FROM "product_subtypes" WHERE category_id = \$1 AND mine_id = \$2`).
			WithArgs(categoryID, mineID).
			WillReturnRows(rows)

		subtypes, err := repo.FindByCriteria(context.Background(), map[string]any{
			"category_id": categoryID,
			"mine_id":     mineID,
		}, shared.CriteriaAnd)

		assert.NoError(t, err)
		assert.Len(t, subtypes, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OR criteria", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSubtypeRepository(db)

		categoryID := uuid.New()
		mineID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "product_subtypes" WHERE category_id = \$1 OR mine_id = \$2`).
			WithArgs(categoryID, mineID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category_id", "mine_id"}))

		subtypes, err := repo.FindByCriteria(context.Background(), map[string]any{
			"category_id": categoryID,
			"mine_id":     mineID,
		}, shared.CriteriaOr)

		assert.NoError(t, err)
		assert.Empty(t, subtypes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSearchHelper(t *testing.T) {
	t.Run("empty phrase returns empty without querying", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		results, err := Search[catalog.ProductSubtype](context.Background(), db, catalog.SubtypeDescriptor, "   ")

		assert.NoError(t, err)
		assert.Empty(t, results)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no search fields returns empty without querying", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		bare := shared.EntityDescriptor{Table: "product_subtypes"}
		results, err := Search[catalog.ProductSubtype](context.Background(), db, bare, "bauxite")

		assert.NoError(t, err)
		assert.Empty(t, results)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uuid.New(), "Washed Bauxite")

		mock.ExpectQuery(`SELECT \* FROM "product_subtypes" WHERE LOWER\(name\) LIKE \$1`).
			WithArgs("%bauxite%").
			WillReturnRows(rows)

		results, err := Search[catalog.ProductSubtype](context.Background(), db, catalog.SubtypeDescriptor, "BAUXITE")

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Washed Bauxite", results[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPeriodExpr(t *testing.T) {
	assert.Equal(t, `to_char(created_at, 'YYYY-MM-DD')`, periodExpr("postgres", "created_at", PeriodDay))
	assert.Equal(t, `to_char(created_at, 'YYYY-MM')`, periodExpr("postgres", "created_at", PeriodMonth))
	assert.Equal(t, `strftime('%Y', created_at)`, periodExpr("sqlite", "created_at", PeriodYear))
	// unknown granularity falls back to day
	assert.Equal(t, `to_char(created_at, 'YYYY-MM-DD')`, periodExpr("postgres", "created_at", "hour"))
}
