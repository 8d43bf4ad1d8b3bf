package repositories_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/repositories"
	"github.com/MuhamadAgungGumelar/storefront-be/internal/shared/errs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherGetByCode_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewVoucherRepo(gormDB)

	rows := sqlmock.NewRows([]string{"id", "code", "discount_type", "discount_value", "usage_limit", "usage_count", "active", "applicable_categories"}).
		AddRow(uuid.New(), "SAVE10", "percent", "10", 5, 4, true, "{Bags,Home}")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vouchers" WHERE code = $1`)).
		WithArgs("SAVE10", 1).
		WillReturnRows(rows)

	v, err := repo.GetByCode(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, models.DiscountPercent, v.DiscountType)
	assert.True(t, v.DiscountValue.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, v.UsageLimit)
	assert.Equal(t, 5, *v.UsageLimit)
	assert.False(t, v.Exhausted())
	assert.Equal(t, []string{"Bags", "Home"}, []string(v.ApplicableCategories))
}

func TestVoucherGetByCode_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewVoucherRepo(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "vouchers"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByCode(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestIncrementUsage_GatedByLimit(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewVoucherRepo(gormDB)

	query := regexp.QuoteMeta(`UPDATE "vouchers" SET "usage_count"=usage_count + 1 WHERE code = $1 AND (usage_limit IS NULL OR usage_count < usage_limit)`)

	mock.ExpectBegin()
	mock.ExpectExec(query).
		WithArgs("SAVE10").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.IncrementUsage(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectBegin()
	mock.ExpectExec(query).
		WithArgs("SAVE10").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err = repo.IncrementUsage(context.Background(), "SAVE10")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoucherUpdate_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewVoucherRepo(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "vouchers" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &models.Voucher{Code: "GONE", DiscountType: models.DiscountFixed})
	assert.ErrorIs(t, err, repositories.ErrVoucherNotFound)
}

func TestVoucherDelete(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewVoucherRepo(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "vouchers" WHERE code = $1`)).
		WithArgs("SAVE10").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "SAVE10")
	assert.NoError(t, err)
}

func TestVoucherUpdate_LimitBelowUsage(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewVoucherRepo(gormDB)
	limit := 2

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "vouchers" SET .* WHERE code = \$\d+ AND usage_count <= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "vouchers" WHERE code = $1`)).
		WithArgs("SAVE10").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := repo.Update(context.Background(), &models.Voucher{Code: "SAVE10", DiscountType: models.DiscountFixed, UsageLimit: &limit})
	assert.ErrorIs(t, err, repositories.ErrUsageLimitBelow)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoucherUpdate_LimitOnMissingCode(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repositories.NewVoucherRepo(gormDB)
	limit := 2

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "vouchers" SET .* WHERE code = \$\d+ AND usage_count <= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "vouchers" WHERE code = $1`)).
		WithArgs("GONE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := repo.Update(context.Background(), &models.Voucher{Code: "GONE", DiscountType: models.DiscountFixed, UsageLimit: &limit})
	assert.ErrorIs(t, err, repositories.ErrVoucherNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
