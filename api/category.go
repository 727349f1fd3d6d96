package api

import (
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler 类别管理，只允许修改月度预算
type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{svc: service.NewCategoryService(db)}
}

// List 列出类别
// @Summary 获取类别列表
// @Description 按名称排序返回类别，可按收支类型筛选
// @Tags 类别
// @Produce json
// @Param type query string false "类型 income 或 expense"
// @Success 200 {object} Response{data=[]models.Category}
// @Failure 400 {object} ErrorResponse
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var q struct {
		Type string `form:"type" binding:"omitempty,oneof=income expense"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		BindError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), q.Type)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, list)
}

// Get 获取单个类别
// @Summary 获取类别
// @Tags 类别
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} Response{data=models.Category}
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, cat)
}

// Update 设置或清除月度预算
// @Summary 更新类别预算
// @Description monthly_budget 传数字设置预算，传 null 清除预算
// @Tags 类别
// @Accept json
// @Produce json
// @Param id path int true "类别ID"
// @Param request body service.UpdateCategoryInput true "预算"
// @Success 200 {object} Response{data=models.Category}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "Category updated successfully", cat)
}
