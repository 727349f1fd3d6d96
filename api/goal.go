package api

import (
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GoalHandler 储蓄目标
type GoalHandler struct {
	svc *service.GoalService
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{svc: service.NewGoalService(db)}
}

type goalQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active completed archived"`
}

// List 列出储蓄目标
// @Summary 获取储蓄目标列表
// @Description 按创建时间倒序，可按状态筛选；progress 为 0-100 的完成百分比
// @Tags 储蓄目标
// @Produce json
// @Param status query string false "状态 active/completed/archived"
// @Success 200 {object} Response{data=[]models.SavingsGoal}
// @Failure 400 {object} ErrorResponse
// @Router /api/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	var q goalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BindError(c, err)
		return
	}
	list, err := h.svc.List(c.Request.Context(), q.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, list)
}

// Get 获取储蓄目标
// @Summary 获取储蓄目标
// @Tags 储蓄目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} Response{data=models.SavingsGoal}
// @Failure 404 {object} ErrorResponse
// @Router /api/goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	goal, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, goal)
}

// Create 创建储蓄目标
// @Summary 创建储蓄目标
// @Description 当前金额达到目标金额时自动标记为 completed
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Param request body service.CreateGoalInput true "储蓄目标"
// @Success 201 {object} Response{data=models.SavingsGoal}
// @Failure 400 {object} ErrorResponse
// @Router /api/goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	var req service.CreateGoalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	goal, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "Savings goal created successfully", goal)
}

// Update 部分更新储蓄目标
// @Summary 更新储蓄目标
// @Description 合并后当前金额达到目标金额时状态强制为 completed
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Param id path int true "目标ID"
// @Param request body service.UpdateGoalInput true "需要修改的字段"
// @Success 200 {object} Response{data=models.SavingsGoal}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateGoalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	goal, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "Savings goal updated successfully", goal)
}

// UpdateProgress 更新储蓄进度
// @Summary 更新储蓄进度
// @Description mode=add 在当前金额上增加，mode=set 直接设置；结果不超过目标金额
// @Tags 储蓄目标
// @Accept json
// @Produce json
// @Param id path int true "目标ID"
// @Param request body service.ProgressInput true "进度"
// @Success 200 {object} Response{data=models.SavingsGoal}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/goals/{id}/progress [post]
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.ProgressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BindError(c, err)
		return
	}
	goal, err := h.svc.UpdateProgress(c.Request.Context(), id, req)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "Savings goal updated successfully", goal)
}

// Delete 删除储蓄目标
// @Summary 删除储蓄目标
// @Tags 储蓄目标
// @Produce json
// @Param id path int true "目标ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponse
// @Router /api/goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "Savings goal deleted successfully", nil)
}
