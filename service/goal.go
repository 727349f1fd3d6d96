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

const maxGoalNameLen = 200

// GoalService 储蓄目标服务
type GoalService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db, now: time.Now}
}

// CreateGoalInput 创建储蓄目标
type CreateGoalInput struct {
	Name          string  `json:"name" binding:"required,max=200" example:"Emergency fund"`
	TargetAmount  float64 `json:"target_amount" binding:"required,gte=0.01" example:"1000"`
	CurrentAmount float64 `json:"current_amount" binding:"omitempty,gte=0" example:"0"`
	Deadline      *string `json:"deadline" binding:"omitempty,date" example:"2024-12-31"`
	Color         *string `json:"color" binding:"omitempty,max=20" example:"#0ea5e9"`
	Description   *string `json:"description" binding:"omitempty,max=500"`
	Status        string  `json:"status" binding:"omitempty,oneof=active completed archived" example:"active"`
}

// UpdateGoalInput 部分更新，nil 字段保持不变
type UpdateGoalInput struct {
	Name          *string  `json:"name" binding:"omitempty,max=200"`
	TargetAmount  *float64 `json:"target_amount" binding:"omitempty,gte=0.01"`
	CurrentAmount *float64 `json:"current_amount" binding:"omitempty,gte=0"`
	Deadline      *string  `json:"deadline" binding:"omitempty,date"`
	Color         *string  `json:"color" binding:"omitempty,max=20"`
	Description   *string  `json:"description" binding:"omitempty,max=500"`
	Status        *string  `json:"status" binding:"omitempty,oneof=active completed archived"`
}

// ProgressInput 进度更新：add 在当前金额上增加，set 直接设置
type ProgressInput struct {
	Mode   string  `json:"mode" binding:"required,oneof=add set" example:"add"`
	Amount *float64 `json:"amount" binding:"required,gte=0" example:"300"`
}

// List 列出储蓄目标，可按状态筛选，按创建时间倒序
func (s *GoalService) List(ctx context.Context, status string) ([]models.SavingsGoal, error) {
	if status != "" && !models.IsValidGoalStatus(status) {
		return nil, Invalid("Validation failed", FieldError{Field: "status", Message: "Status must be active, completed, or archived"})
	}

	q := s.db.WithContext(ctx).Model(&models.SavingsGoal{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	list := make([]models.SavingsGoal, 0)
	if err := q.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, Internal("Failed to list savings goals", err)
	}
	for i := range list {
		list[i].Progress = calc.Progress(&list[i])
	}
	return list, nil
}

// Get 获取单个储蓄目标
func (s *GoalService) Get(ctx context.Context, id uint) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.WithContext(ctx).First(&goal, id).Error; err != nil {
		return nil, wrapFind(err, "Savings goal not found")
	}
	goal.Progress = calc.Progress(&goal)
	return &goal, nil
}

// Create 创建储蓄目标，当前金额默认 0、状态默认 active
func (s *GoalService) Create(ctx context.Context, in CreateGoalInput) (*models.SavingsGoal, error) {
	name := strings.TrimSpace(in.Name)
	status := in.Status
	if status == "" {
		status = models.GoalStatusActive
	}
	if err := validateGoalFields(&name, &in.TargetAmount, &in.CurrentAmount, in.Deadline, in.Description, &status); err != nil {
		return nil, err
	}

	goal := models.SavingsGoal{
		Name:          name,
		TargetAmount:  calc.RoundMoney(in.TargetAmount),
		CurrentAmount: calc.RoundMoney(in.CurrentAmount),
		Deadline:      normalizeText(in.Deadline),
		Color:         normalizeText(in.Color),
		Description:   normalizeText(in.Description),
		Status:        status,
	}
	calc.AutoComplete(&goal)

	if err := s.db.WithContext(ctx).Create(&goal).Error; err != nil {
		return nil, Internal("Failed to create savings goal", err)
	}
	return s.Get(ctx, goal.ID)
}

// Update 部分更新储蓄目标。
// 合并后的目标先经过 AutoComplete：当前金额达到目标金额时状态强制为 completed，覆盖请求中的状态。
func (s *GoalService) Update(ctx context.Context, id uint, in UpdateGoalInput) (*models.SavingsGoal, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var name *string
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		name = &v
	}
	if err := validateGoalFields(name, in.TargetAmount, in.CurrentAmount, in.Deadline, in.Description, in.Status); err != nil {
		return nil, err
	}

	merged := *existing
	updates := map[string]interface{}{}
	if name != nil {
		merged.Name = *name
		updates["name"] = merged.Name
	}
	if in.TargetAmount != nil {
		merged.TargetAmount = calc.RoundMoney(*in.TargetAmount)
		updates["target_amount"] = merged.TargetAmount
	}
	if in.CurrentAmount != nil {
		merged.CurrentAmount = calc.RoundMoney(*in.CurrentAmount)
		updates["current_amount"] = merged.CurrentAmount
	}
	if in.Deadline != nil {
		merged.Deadline = normalizeText(in.Deadline)
		updates["deadline"] = merged.Deadline
	}
	if in.Color != nil {
		merged.Color = normalizeText(in.Color)
		updates["color"] = merged.Color
	}
	if in.Description != nil {
		merged.Description = normalizeText(in.Description)
		updates["description"] = merged.Description
	}
	if in.Status != nil {
		merged.Status = *in.Status
		updates["status"] = merged.Status
	}
	if len(updates) == 0 {
		return existing, nil
	}

	// 使用合并后的 target 与 current 判断是否完成
	calc.AutoComplete(&merged)
	if merged.Status != existing.Status || in.Status != nil {
		updates["status"] = merged.Status
	}
	updates["updated_at"] = s.now()

	if err := s.db.WithContext(ctx).Model(&models.SavingsGoal{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, Internal("Failed to update savings goal", err)
	}
	return s.Get(ctx, id)
}

// UpdateProgress 按 add/set 模式更新当前金额（结果不超过目标金额），然后走 Update 流程
func (s *GoalService) UpdateProgress(ctx context.Context, id uint, in ProgressInput) (*models.SavingsGoal, error) {
	goal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Amount == nil {
		return nil, Invalid(progressMessage(calc.ErrNegativeAmount), FieldError{Field: "amount", Message: progressMessage(calc.ErrNegativeAmount)})
	}
	next, err := calc.ApplyProgressUpdate(goal, in.Mode, *in.Amount)
	if err != nil {
		field := "amount"
		if errors.Is(err, calc.ErrUnknownMode) {
			field = "mode"
		}
		return nil, Invalid(progressMessage(err), FieldError{Field: field, Message: progressMessage(err)})
	}
	return s.Update(ctx, id, UpdateGoalInput{CurrentAmount: &next})
}

func progressMessage(err error) string {
	switch {
	case errors.Is(err, calc.ErrExceedsTarget):
		return "Amount cannot exceed target"
	case errors.Is(err, calc.ErrNegativeAmount):
		return "Please enter a valid amount"
	case errors.Is(err, calc.ErrUnknownMode):
		return "Mode must be add or set"
	}
	return err.Error()
}

// Delete 永久删除储蓄目标
func (s *GoalService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.SavingsGoal{}, id)
	if res.Error != nil {
		return Internal("Failed to delete savings goal", res.Error)
	}
	if res.RowsAffected == 0 {
		return NotFound("Savings goal not found")
	}
	return nil
}

func validateGoalFields(name *string, target, current *float64, deadline, description, status *string) error {
	var details []FieldError
	if name != nil && (*name == "" || utf8.RuneCountInString(*name) > maxGoalNameLen) {
		details = append(details, FieldError{Field: "name", Message: "Name is required and must be 200 characters or less"})
	}
	if target != nil && *target < 0.01 {
		details = append(details, FieldError{Field: "target_amount", Message: "Target amount must be positive"})
	}
	if current != nil && *current < 0 {
		details = append(details, FieldError{Field: "current_amount", Message: "Current amount must be non-negative"})
	}
	if deadline != nil && *deadline != "" && !IsDate(*deadline) {
		details = append(details, FieldError{Field: "deadline", Message: "deadline must be in YYYY-MM-DD format"})
	}
	if description != nil && utf8.RuneCountInString(strings.TrimSpace(*description)) > maxDescriptionLen {
		details = append(details, FieldError{Field: "description", Message: "Description must be 500 characters or less"})
	}
	if status != nil && !models.IsValidGoalStatus(*status) {
		details = append(details, FieldError{Field: "status", Message: "Status must be active, completed, or archived"})
	}
	if len(details) > 0 {
		return Invalid("Validation failed", details...)
	}
	return nil
}
