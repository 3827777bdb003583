package controller

import (
	"errors"
	"strconv"

	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
	AuthService   *service.AuthService
}

func NewModuleController(moduleService *service.ModuleService, authService *service.AuthService) *ModuleController {
	return &ModuleController{ModuleService: moduleService, AuthService: authService}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// List godoc
// @Summary List visible modules
// @Description Teachers see the whole catalog, students only assigned modules
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Module}
// @Router /api/modules [get]
func (c *ModuleController) List(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	modules, err := c.ModuleService.ListForUser(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// Get godoc
// @Summary Get a module with its step timeline
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response{data=service.ModuleView}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [get]
func (c *ModuleController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	view, err := c.ModuleService.GetWithTimeline(id)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}
