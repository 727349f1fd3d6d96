package service

import (
	"context"
	"encoding/json"
	"errors"

	"fintrack/calc"
	"fintrack/models"

	"gorm.io/gorm"
)

// CategoryService 类别服务：类别为初始化写入的参考数据，只允许修改月度预算
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// UpdateCategoryInput 类别更新字段
type UpdateCategoryInput struct {
	MonthlyBudget Nullable[float64] `json:"monthly_budget" swaggertype:"number"`
}

// UnmarshalJSON 类型错误时带上字段名 monthly_budget
func (in *UpdateCategoryInput) UnmarshalJSON(b []byte) error {
	var raw struct {
		MonthlyBudget json.RawMessage `json:"monthly_budget"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.MonthlyBudget == nil {
		return nil
	}
	if err := in.MonthlyBudget.UnmarshalJSON(raw.MonthlyBudget); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			typeErr.Field = "monthly_budget"
			return typeErr
		}
		return err
	}
	return nil
}

// List 列出类别，可按收支类型筛选，按名称排序
func (s *CategoryService) List(ctx context.Context, typ string) ([]models.Category, error) {
	if typ != "" && !models.IsValidType(typ) {
		return nil, Invalid("Validation failed", FieldError{Field: "type", Message: "Type must be income or expense"})
	}

	q := s.db.WithContext(ctx).Model(&models.Category{})
	if typ != "" {
		q = q.Where("type = ?", typ)
	}
	list := make([]models.Category, 0)
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, Internal("Failed to list categories", err)
	}
	return list, nil
}

// Get 获取单个类别
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := s.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, wrapFind(err, "Category not found")
	}
	return &cat, nil
}

// Update 设置或清除月度预算；未传字段时原样返回
func (s *CategoryService) Update(ctx context.Context, id uint, in UpdateCategoryInput) (*models.Category, error) {
	cat, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !in.MonthlyBudget.Set {
		return cat, nil
	}

	budget := in.MonthlyBudget.Ptr()
	if budget != nil {
		if *budget < 0 {
			return nil, Invalid("Validation failed", FieldError{Field: "monthly_budget", Message: "Monthly budget must be a positive number or null"})
		}
		*budget = calc.RoundMoney(*budget)
	}

	if err := s.db.WithContext(ctx).Model(cat).Update("monthly_budget", budget).Error; err != nil {
		return nil, Internal("Failed to update category", err)
	}
	return s.Get(ctx, id)
}
