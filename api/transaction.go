package api

import (
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionHandler 收支记录
type TransactionHandler struct {
	svc *service.TransactionService
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{svc: service.NewTransactionService(db)}
}

// List 列出收支记录
// @Summary 获取收支记录列表
// @Description 按日期倒序返回，支持类型、类别、日期范围筛选与分页
// @Tags 收支记录
// @Produce json
// @Param type query string false "类型 income 或 expense"
// @Param category_id query int false "类别ID"
// @Param startDate query string false "开始日期 (YYYY-MM-DD)"
// @Param endDate query string false "结束日期 (YYYY-MM-DD)"
// @Param limit query int false "返回条数 1-100"
// @Param offset query int false "偏移量"
// @Success 200 {object} Response{data=[]models.Transaction}
// @Failure 400 {object} ErrorResponse
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var f service.TransactionFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		BindError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, list)
}

// Get 获取单条收支记录
// @Summary 获取收支记录
// @Tags 收支记录
// @Produce json
// @Param id path int true "记录ID"
// @Success 200 {object} Response{data=models.Transaction}
// @Failure 404 {object} ErrorResponse
// @Router /api/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	txn, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, txn)
}

// Create 创建收支记录
// @Summary 创建收支记录
// @Description 日期为空时使用今天；类别必须存在且类型与记录一致
// @Tags 收支记录
// @Accept json
// @Produce json
// @Param request body service.CreateTransactionInput true "收支记录"
// @Success 201 {object} Response{data=models.Transaction}
// @Failure 400 {object} ErrorResponse
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req service.CreateTransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	txn, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "Transaction created successfully", txn)
}

// Update 部分更新收支记录
// @Summary 更新收支记录
// @Tags 收支记录
// @Accept json
// @Produce json
// @Param id path int true "记录ID"
// @Param request body service.UpdateTransactionInput true "需要修改的字段"
// @Success 200 {object} Response{data=models.Transaction}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateTransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	txn, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "Transaction updated successfully", txn)
}

// Delete 删除收支记录
// @Summary 删除收支记录
// @Tags 收支记录
// @Produce json
// @Param id path int true "记录ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponse
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "Transaction deleted successfully", nil)
}
