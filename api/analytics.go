package api

import (
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AnalyticsHandler 统计分析
type AnalyticsHandler struct {
	svc *service.AnalyticsService
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{svc: service.NewAnalyticsService(db)}
}

// bindRange 绑定 startDate/endDate 查询参数
func bindRange(c *gin.Context) (service.DateRange, bool) {
	var r service.DateRange
	if err := c.ShouldBindQuery(&r); err != nil {
		BindError(c, err)
		return r, false
	}
	return r, true
}

// Summary 收支汇总
// @Summary 收支汇总
// @Description 统计日期范围内的总收入、总支出与结余，不传日期则统计全部
// @Tags 统计
// @Produce json
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {object} Response{data=service.Summary}
// @Failure 400 {object} ErrorResponse
// @Router /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	out, err := h.svc.Summary(c.Request.Context(), r)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, out)
}

// ByCategory 按类别统计
// @Summary 按类别统计
// @Description 返回所有类别（包括没有记录的类别）的合计与笔数，按合计降序
// @Tags 统计
// @Produce json
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {object} Response{data=[]service.CategoryTotal}
// @Failure 400 {object} ErrorResponse
// @Router /api/analytics/by-category [get]
func (h *AnalyticsHandler) ByCategory(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	out, err := h.svc.ByCategory(c.Request.Context(), r)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, out)
}

// Trends 月度趋势
// @Summary 月度趋势
// @Description 按月统计收入、支出与净额，按月份升序，没有记录的月份不返回
// @Tags 统计
// @Produce json
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {object} Response{data=[]service.MonthlyTrend}
// @Failure 400 {object} ErrorResponse
// @Router /api/analytics/trends [get]
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	out, err := h.svc.Trends(c.Request.Context(), r)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, out)
}

// Budgets 预算使用情况
// @Summary 预算使用情况
// @Description 各支出类别的预算、已用金额与状态，默认统计本月
// @Tags 统计
// @Produce json
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {object} Response{data=service.BudgetOverview}
// @Failure 400 {object} ErrorResponse
// @Router /api/analytics/budgets [get]
func (h *AnalyticsHandler) Budgets(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	out, err := h.svc.Budgets(c.Request.Context(), r)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, out)
}
