package service

import (
	"context"
	"strings"
	"testing"

	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	txn, err := svc.Create(ctx, CreateTransactionInput{
		Type:        models.TypeExpense,
		Amount:      85.505,
		CategoryID:  categoryID(t, db, "Food & Dining"),
		Description: strPtr("  Groceries  "),
		Date:        "2024-01-12",
	})
	require.NoError(t, err)
	assert.NotZero(t, txn.ID)
	assert.Equal(t, 85.51, txn.Amount)
	assert.Equal(t, "Groceries", *txn.Description)
	assert.Equal(t, "Food & Dining", txn.CategoryName)
	assert.Equal(t, "#10b981", txn.CategoryColor)
	assert.Equal(t, "utensils", txn.CategoryIcon)

	got, err := svc.Get(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.Amount, got.Amount)
	assert.Equal(t, "2024-01-12", got.Date)
}

func TestTransaction_CreateDefaultsDateToToday(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	svc.now = fixedNow("2024-06-15")

	txn, err := svc.Create(context.Background(), CreateTransactionInput{
		Type:       models.TypeIncome,
		Amount:     100,
		CategoryID: categoryID(t, db, "Gifts"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", txn.Date)
	assert.Nil(t, txn.Description)
}

func TestTransaction_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	salary := categoryID(t, db, "Salary")

	tests := []struct {
		name  string
		in    CreateTransactionInput
		field string
	}{
		{"unknown category", CreateTransactionInput{Type: models.TypeIncome, Amount: 10, CategoryID: 999}, "category_id"},
		{"type mismatch", CreateTransactionInput{Type: models.TypeExpense, Amount: 10, CategoryID: salary}, "category_id"},
		{"zero amount", CreateTransactionInput{Type: models.TypeIncome, Amount: 0, CategoryID: salary}, "amount"},
		{"bad type", CreateTransactionInput{Type: "transfer", Amount: 10, CategoryID: salary}, "type"},
		{"bad date", CreateTransactionInput{Type: models.TypeIncome, Amount: 10, CategoryID: salary, Date: "2024-02-30"}, "date"},
		{"long description", CreateTransactionInput{Type: models.TypeIncome, Amount: 10, CategoryID: salary, Description: strPtr(strings.Repeat("x", 501))}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			require.Error(t, err)
			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, KindValidation, se.Kind)
			require.NotEmpty(t, se.Details)
			assert.Equal(t, tt.field, se.Details[0].Field)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransaction_NotFound(t *testing.T) {
	svc := NewTransactionService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Get(ctx, 42)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.EqualError(t, err, "Transaction not found")

	_, err = svc.Update(ctx, 42, UpdateTransactionInput{Amount: floatPtr(1)})
	assert.Equal(t, KindNotFound, KindOf(err))

	assert.Equal(t, KindNotFound, KindOf(svc.Delete(ctx, 42)))
}

func TestTransaction_PartialUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()
	txn := addTxn(t, db, models.TypeExpense, 40, "Food & Dining", "2024-01-11")

	updated, err := svc.Update(ctx, txn.ID, UpdateTransactionInput{Amount: floatPtr(42.5)})
	require.NoError(t, err)
	assert.Equal(t, 42.5, updated.Amount)
	assert.Equal(t, txn.Date, updated.Date)
	assert.Equal(t, txn.CategoryID, updated.CategoryID)
	assert.Equal(t, txn.Type, updated.Type)
	assert.False(t, updated.UpdatedAt.Before(txn.UpdatedAt))

	// 改为收入类型时类别也必须是收入类别
	_, err = svc.Update(ctx, txn.ID, UpdateTransactionInput{Type: strPtr(models.TypeIncome)})
	assert.Equal(t, KindValidation, KindOf(err))

	updated, err = svc.Update(ctx, txn.ID, UpdateTransactionInput{
		Type:       strPtr(models.TypeIncome),
		CategoryID: uintPtr(categoryID(t, db, "Gifts")),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeIncome, updated.Type)
	assert.Equal(t, "Gifts", updated.CategoryName)

	_, err = svc.Update(ctx, txn.ID, UpdateTransactionInput{CategoryID: uintPtr(999)})
	assert.Equal(t, KindValidation, KindOf(err))

	// 清空描述
	updated, err = svc.Update(ctx, txn.ID, UpdateTransactionInput{Description: strPtr("note")})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	updated, err = svc.Update(ctx, txn.ID, UpdateTransactionInput{Description: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
}

func TestTransaction_List(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	ctx := context.Background()

	list, err := svc.List(ctx, TransactionFilter{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	addTxn(t, db, models.TypeIncome, 5000, "Salary", "2024-01-05")
	addTxn(t, db, models.TypeExpense, 1200, "Housing", "2024-01-10")
	addTxn(t, db, models.TypeExpense, 40, "Food & Dining", "2024-02-11")
	addTxn(t, db, models.TypeExpense, 12, "Food & Dining", "2024-02-11")

	list, err = svc.List(ctx, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, list, 4)
	// 同一天按创建顺序倒序
	assert.Equal(t, 12.0, list[0].Amount)
	assert.Equal(t, 40.0, list[1].Amount)
	assert.Equal(t, "2024-01-05", list[3].Date)

	list, err = svc.List(ctx, TransactionFilter{Type: models.TypeExpense})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = svc.List(ctx, TransactionFilter{CategoryID: categoryID(t, db, "Food & Dining")})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.List(ctx, TransactionFilter{DateRange: DateRange{StartDate: "2024-01-06", EndDate: "2024-01-31"}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Housing", list[0].CategoryName)

	list, err = svc.List(ctx, TransactionFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 40.0, list[0].Amount)

	_, err = svc.List(ctx, TransactionFilter{Limit: 101})
	assert.Equal(t, KindValidation, KindOf(err))
	_, err = svc.List(ctx, TransactionFilter{Type: "transfer"})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestTransaction_Delete(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db)
	txn := addTxn(t, db, models.TypeExpense, 40, "Food & Dining", "2024-01-11")

	require.NoError(t, svc.Delete(context.Background(), txn.ID))
	_, err := svc.Get(context.Background(), txn.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}
