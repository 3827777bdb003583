package controller

import (
	"errors"

	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Complete godoc
// @Summary Record a module completion
// @Description The score is computed server-side from the submitted answers and tutor transcript; any client-claimed score is ignored. Retries keep the best score.
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CompleteRequest true "completion data"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/progress [post]
func (c *ProgressController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.ProgressService.Complete(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrModuleNotFound):
			util.NotFound(ctx)
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, p)
}

// List godoc
// @Summary List the current user's completions
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /api/progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.ProgressService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// GetForModule godoc
// @Summary Get the current user's progress on one module
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "module id"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response
// @Router /api/progress/module/{id} [get]
func (c *ProgressController) GetForModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	p, err := c.ProgressService.GetForModule(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, p)
}

type OverrideScoreRequest struct {
	Score *int `json:"score" binding:"required"`
}

// OverrideScore godoc
// @Summary Override a stored score
// @Description Teacher correction; unlike completions it may lower a score
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "progress id"
// @Param body body OverrideScoreRequest true "new score"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/editor/progress/{id}/score [put]
func (c *ProgressController) OverrideScore(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req OverrideScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProgressService.OverrideScore(id, *req.Score); err != nil {
		if errors.Is(err, util.ErrProgressNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, nil)
}
