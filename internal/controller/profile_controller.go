package controller

import (
	"errors"

	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	UserService *service.UserService
}

func NewProfileController(userService *service.UserService) *ProfileController {
	return &ProfileController{UserService: userService}
}

// Profile godoc
// @Summary Current user's profile
// @Description Identity, level and every completed module with its best score
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Router /api/profile [get]
func (c *ProfileController) Profile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.UserService.Profile(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Dashboard godoc
// @Summary Teacher dashboard
// @Description Per-student completion counts and averages plus the class average
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DashboardView}
// @Router /api/editor/dashboard [get]
func (c *ProfileController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.UserService.TeacherDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
