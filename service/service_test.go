package service

import (
	"context"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB 每个测试独立的内存数据库，已写入默认类别
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	_, err = database.SeedCategories(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func categoryID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	var cat models.Category
	require.NoError(t, db.Where("name = ?", name).First(&cat).Error)
	return cat.ID
}

func addTxn(t *testing.T, db *gorm.DB, typ string, amount float64, category, date string) *models.Transaction {
	t.Helper()
	svc := NewTransactionService(db)
	txn, err := svc.Create(context.Background(), CreateTransactionInput{
		Type:       typ,
		Amount:     amount,
		CategoryID: categoryID(t, db, category),
		Date:       date,
	})
	require.NoError(t, err)
	return txn
}

func fixedNow(s string) func() time.Time {
	return func() time.Time {
		tm, _ := time.ParseInLocation(models.DateLayout, s, time.Local)
		return tm.Add(12 * time.Hour)
	}
}

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }
func uintPtr(u uint) *uint        { return &u }
