package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"fintrack/calc"
	"fintrack/models"

	"gorm.io/gorm"
)

const (
	maxDescriptionLen = 500
	maxListLimit      = 100
)

// TransactionService 收支记录服务
type TransactionService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db, now: time.Now}
}

// TransactionFilter 列表筛选条件，全部可选，多个条件为 AND 关系
type TransactionFilter struct {
	DateRange
	Type       string `form:"type" binding:"omitempty,oneof=income expense"`
	CategoryID uint   `form:"category_id" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset     int    `form:"offset" binding:"omitempty,min=0"`
}

// CreateTransactionInput 创建收支记录
type CreateTransactionInput struct {
	Type        string  `json:"type" binding:"required,oneof=income expense" example:"expense"`
	Amount      float64 `json:"amount" binding:"required,gte=0.01" example:"85.50"`
	CategoryID  uint    `json:"category_id" binding:"required,min=1" example:"3"`
	Description *string `json:"description" binding:"omitempty,max=500" example:"Groceries"`
	Date        string  `json:"date" binding:"omitempty,date" example:"2024-01-10"` // 为空时取今天
}

// UpdateTransactionInput 部分更新，nil 字段保持不变
type UpdateTransactionInput struct {
	Type        *string  `json:"type" binding:"omitempty,oneof=income expense"`
	Amount      *float64 `json:"amount" binding:"omitempty,gte=0.01"`
	CategoryID  *uint    `json:"category_id" binding:"omitempty,min=1"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Date        *string  `json:"date" binding:"omitempty,date"`
}

// withCategory 查询时附带类别名称、颜色、图标
func (s *TransactionService) withCategory(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("transactions.*, categories.name AS category_name, categories.color AS category_color, categories.icon AS category_icon").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id")
}

// List 按条件列出收支记录，按日期、创建时间倒序
func (s *TransactionService) List(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	if err := f.DateRange.validate(); err != nil {
		return nil, err
	}
	if f.Type != "" && !models.IsValidType(f.Type) {
		return nil, Invalid("Validation failed", FieldError{Field: "type", Message: "Type must be income or expense"})
	}
	if f.Limit < 0 || f.Limit > maxListLimit || f.Offset < 0 {
		return nil, Invalid("Validation failed", FieldError{Field: "limit", Message: "Limit must be between 1 and 100"})
	}

	q := s.withCategory(ctx)
	if f.Type != "" {
		q = q.Where("transactions.type = ?", f.Type)
	}
	if f.CategoryID != 0 {
		q = q.Where("transactions.category_id = ?", f.CategoryID)
	}
	q = f.DateRange.apply(q, "transactions.date")
	q = q.Order("transactions.date DESC, transactions.created_at DESC, transactions.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
		if f.Offset > 0 {
			q = q.Offset(f.Offset)
		}
	}

	list := make([]models.Transaction, 0)
	if err := q.Find(&list).Error; err != nil {
		return nil, Internal("Failed to list transactions", err)
	}
	return list, nil
}

// Get 获取单条收支记录
func (s *TransactionService) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.withCategory(ctx).Where("transactions.id = ?", id).First(&txn).Error; err != nil {
		return nil, wrapFind(err, "Transaction not found")
	}
	return &txn, nil
}

// checkCategory 校验类别存在且与收支类型一致
func (s *TransactionService) checkCategory(ctx context.Context, categoryID uint, typ string) error {
	var cat models.Category
	if err := s.db.WithContext(ctx).Select("id", "type").First(&cat, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Invalid("Invalid category_id", FieldError{Field: "category_id", Message: "Category does not exist"})
		}
		return Internal("Failed to load category", err)
	}
	if cat.Type != typ {
		return Invalid("Transaction type does not match category type",
			FieldError{Field: "category_id", Message: "Category type is " + cat.Type})
	}
	return nil
}

// Create 创建收支记录，日期为空时使用今天
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	if err := validateTransactionFields(&in.Type, &in.Amount, in.Description, &in.Date); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID, in.Type); err != nil {
		return nil, err
	}

	date := in.Date
	if date == "" {
		date = s.now().Format(models.DateLayout)
	}
	txn := models.Transaction{
		Type:        in.Type,
		Amount:      calc.RoundMoney(in.Amount),
		CategoryID:  in.CategoryID,
		Description: normalizeText(in.Description),
		Date:        date,
	}
	if err := s.db.WithContext(ctx).Omit("Category").Create(&txn).Error; err != nil {
		return nil, Internal("Failed to create transaction", err)
	}
	return s.Get(ctx, txn.ID)
}

// Update 部分更新收支记录，只修改请求中出现的字段
func (s *TransactionService) Update(ctx context.Context, id uint, in UpdateTransactionInput) (*models.Transaction, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateTransactionFields(in.Type, in.Amount, in.Description, in.Date); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Type != nil {
		updates["type"] = *in.Type
	}
	if in.Amount != nil {
		updates["amount"] = calc.RoundMoney(*in.Amount)
	}
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	if in.Description != nil {
		updates["description"] = normalizeText(in.Description)
	}
	if in.Date != nil && *in.Date != "" {
		updates["date"] = *in.Date
	}
	if len(updates) == 0 {
		return existing, nil
	}

	// 类别或类型变化时，按合并后的值重新校验
	if in.CategoryID != nil || in.Type != nil {
		categoryID, typ := existing.CategoryID, existing.Type
		if in.CategoryID != nil {
			categoryID = *in.CategoryID
		}
		if in.Type != nil {
			typ = *in.Type
		}
		if err := s.checkCategory(ctx, categoryID, typ); err != nil {
			return nil, err
		}
	}

	updates["updated_at"] = s.now()
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, Internal("Failed to update transaction", err)
	}
	return s.Get(ctx, id)
}

// Delete 永久删除收支记录
func (s *TransactionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return Internal("Failed to delete transaction", res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("Transaction not found")
	}
	return nil
}

// validateTransactionFields 服务层兜底校验（HTTP 层已做绑定校验）
func validateTransactionFields(typ *string, amount *float64, description *string, date *string) error {
	var details []FieldError
	if typ != nil && !models.IsValidType(*typ) {
		details = append(details, FieldError{Field: "type", Message: "Type must be income or expense"})
	}
	if amount != nil && *amount < 0.01 {
		details = append(details, FieldError{Field: "amount", Message: "Amount must be positive"})
	}
	if description != nil && utf8.RuneCountInString(strings.TrimSpace(*description)) > maxDescriptionLen {
		details = append(details, FieldError{Field: "description", Message: "Description must be 500 characters or less"})
	}
	if date != nil && *date != "" && !IsDate(*date) {
		details = append(details, FieldError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	if len(details) > 0 {
		return Invalid("Validation failed", details...)
	}
	return nil
}

// normalizeText 去除首尾空白，空字符串存为 NULL
func normalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
