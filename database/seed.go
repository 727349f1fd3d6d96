package database

import (
	"fmt"
	"log"
	"time"

	"fintrack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCategories 写入默认类别，已存在的同名类别保持不变。
// 整个过程在同一事务内完成，不会出现只写入部分类别的情况。
func SeedCategories(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Transaction(func(tx *gorm.DB) error {
		cats := models.DefaultCategories()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&cats).Error; err != nil {
			return err
		}
		return tx.Model(&models.Category{}).Count(&count).Error
	})
	if err != nil {
		return 0, fmt.Errorf("写入默认类别失败: %w", err)
	}
	log.Printf("已写入类别，共 %d 个", count)
	return count, nil
}

// sampleTransaction 演示数据，类别按名称查找
type sampleTransaction struct {
	Type        string
	Amount      float64
	Category    string
	Description string
	DaysAgo     int
}

var sampleTransactions = []sampleTransaction{
	{models.TypeIncome, 5000, "Salary", "Monthly salary", 0},
	{models.TypeExpense, 1200, "Housing", "Rent payment", 0},
	{models.TypeExpense, 85.50, "Food & Dining", "Groceries", 1},
}

// SeedSampleData 写入演示收支记录（同一事务内）
func SeedSampleData(db *gorm.DB, now time.Time) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, s := range sampleTransactions {
			var cat models.Category
			if err := tx.Where("name = ?", s.Category).First(&cat).Error; err != nil {
				return fmt.Errorf("类别 %s 不存在: %w", s.Category, err)
			}
			desc := s.Description
			txn := models.Transaction{
				Type:        s.Type,
				Amount:      s.Amount,
				CategoryID:  cat.ID,
				Description: &desc,
				Date:        now.AddDate(0, 0, -s.DaysAgo).Format(models.DateLayout),
			}
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("写入演示数据失败: %w", err)
	}
	log.Printf("已写入 %d 条演示收支记录", len(sampleTransactions))
	return nil
}
