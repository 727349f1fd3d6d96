package api

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"fintrack/export"
	"fintrack/models"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	transactions *service.TransactionService
	goals        *service.GoalService
}

// NewExportHandler 创建导出处理器
func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{
		transactions: service.NewTransactionService(db),
		goals:        service.NewGoalService(db),
	}
}

type exportTransactionQuery struct {
	service.TransactionFilter
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}

type exportGoalQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active completed archived"`
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}

// Transactions 导出收支记录
// @Summary 导出收支记录
// @Description 按筛选条件导出收支记录，格式为 csv（默认）或 xlsx
// @Tags 导出
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv 或 xlsx"
// @Param type query string false "类型 income 或 expense"
// @Param category_id query int false "类别ID"
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {file} file "导出文件"
// @Failure 400 {object} ErrorResponse
// @Router /api/export/transactions [get]
func (h *ExportHandler) Transactions(c *gin.Context) {
	var q exportTransactionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BindError(c, err)
		return
	}
	list, err := h.transactions.List(c.Request.Context(), q.TransactionFilter)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.send(c, "transactions", q.Format, export.Transactions(list))
}

// Goals 导出储蓄目标
// @Summary 导出储蓄目标
// @Description 导出储蓄目标，格式为 csv（默认）或 xlsx
// @Tags 导出
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv 或 xlsx"
// @Param status query string false "状态 active/completed/archived"
// @Success 200 {file} file "导出文件"
// @Failure 400 {object} ErrorResponse
// @Router /api/export/goals [get]
func (h *ExportHandler) Goals(c *gin.Context) {
	var q exportGoalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BindError(c, err)
		return
	}
	list, err := h.goals.List(c.Request.Context(), q.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	h.send(c, "goals", q.Format, export.Goals(list))
}

func (h *ExportHandler) send(c *gin.Context, name, format string, table *export.Table) {
	if format == "" {
		format = export.FormatCSV
	}

	buf := new(bytes.Buffer)
	if err := export.Write(buf, format, table); err != nil {
		log.Printf("生成导出文件失败: %v", err)
		InternalError(c, "Failed to generate export file")
		return
	}

	filename := fmt.Sprintf("%s_%s.%s", name, time.Now().Format(models.DateLayout), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
