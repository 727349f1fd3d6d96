package service

import (
	"time"

	"fintrack/models"

	"gorm.io/gorm"
)

// DateRange 闭区间日期范围（YYYY-MM-DD），任一端可为空
type DateRange struct {
	StartDate string `form:"startDate" json:"startDate,omitempty" binding:"omitempty,date"`
	EndDate   string `form:"endDate" json:"endDate,omitempty" binding:"omitempty,date"`
}

// apply 在 column 上追加日期范围条件
func (r DateRange) apply(db *gorm.DB, column string) *gorm.DB {
	if r.StartDate != "" {
		db = db.Where(column+" >= ?", r.StartDate)
	}
	if r.EndDate != "" {
		db = db.Where(column+" <= ?", r.EndDate)
	}
	return db
}

// validate 校验日期格式与先后顺序
func (r DateRange) validate() error {
	var details []FieldError
	if r.StartDate != "" && !IsDate(r.StartDate) {
		details = append(details, FieldError{Field: "startDate", Message: "startDate must be in YYYY-MM-DD format"})
	}
	if r.EndDate != "" && !IsDate(r.EndDate) {
		details = append(details, FieldError{Field: "endDate", Message: "endDate must be in YYYY-MM-DD format"})
	}
	if len(details) > 0 {
		return Invalid("Validation failed", details...)
	}
	return nil
}

// IsDate 判断字符串是否为合法的 YYYY-MM-DD 日期
func IsDate(s string) bool {
	if len(s) != len(models.DateLayout) {
		return false
	}
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}
