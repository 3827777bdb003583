package controller

import (
	"errors"

	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// EditorController is the teacher-only CRUD surface for modules and
// assignments.
type EditorController struct {
	ModuleService     *service.ModuleService
	AssignmentService *service.AssignmentService
}

func NewEditorController(moduleService *service.ModuleService, assignmentService *service.AssignmentService) *EditorController {
	return &EditorController{ModuleService: moduleService, AssignmentService: assignmentService}
}

// CreateModule godoc
// @Summary Create a module
// @Tags editor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SaveModuleRequest true "module data"
// @Success 201 {object} util.Response{data=model.Module}
// @Failure 400 {object} util.Response
// @Router /api/editor/modules [post]
func (c *EditorController) CreateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SaveModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.Create(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, module)
}

// UpdateModule godoc
// @Summary Update a module
// @Description Rewrites the module; exercises are replaced wholesale
// @Tags editor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Param body body service.SaveModuleRequest true "module data"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/editor/modules/{id} [put]
func (c *EditorController) UpdateModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req service.SaveModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.Update(id, req)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary Delete a module
// @Description Removes the module with its exercises, assignments and audio
// @Tags editor
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/editor/modules/{id} [delete]
func (c *EditorController) DeleteModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ModuleService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

type AssignRequest struct {
	ModuleID uint `json:"moduleId" binding:"required"`
}

// Assign godoc
// @Summary Assign a module to the teacher's students
// @Tags editor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AssignRequest true "module to assign"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 404 {object} util.Response
// @Router /api/editor/assignments [post]
func (c *EditorController) Assign(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AssignmentService.Assign(claims.UserID, req.ModuleID)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, a)
}

// ListAssignments godoc
// @Summary List the teacher's assignments
// @Tags editor
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/editor/assignments [get]
func (c *EditorController) ListAssignments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.AssignmentService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// Unassign godoc
// @Summary Remove an assignment
// @Tags editor
// @Produce json
// @Security BearerAuth
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response
// @Router /api/editor/assignments/{id} [delete]
func (c *EditorController) Unassign(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.AssignmentService.Unassign(id, claims.UserID); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
