package controller

import (
	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlacementController struct {
	PlacementService *service.PlacementService
}

func NewPlacementController(placementService *service.PlacementService) *PlacementController {
	return &PlacementController{PlacementService: placementService}
}

// Questions godoc
// @Summary Placement test questions
// @Description Answers are never included in the payload
// @Tags placement
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.PlacementQuestion}
// @Router /api/placement-test/questions [get]
func (c *PlacementController) Questions(ctx *gin.Context) {
	questions, err := c.PlacementService.ListQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

type SubmitPlacementRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Grade a placement test and store the level
// @Description Grades per category, bands each skill and averages the bands into the student's CEFR level
// @Tags placement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitPlacementRequest true "question id to answer"
// @Success 200 {object} util.Response{data=service.PlacementResult}
// @Failure 400 {object} util.Response
// @Router /api/placement-test/submit [post]
func (c *PlacementController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitPlacementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PlacementService.Grade(req.Answers)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if err := c.PlacementService.Apply(claims.UserID, result.Level); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// LegacySubmitRequest carries a single raw correct count, still sent by
// older clients.
type LegacySubmitRequest struct {
	Score *int `json:"score" binding:"required"`
}

// SubmitLegacy godoc
// @Summary Store a level from a raw test score
// @Tags placement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LegacySubmitRequest true "raw correct count"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/placement-test [post]
func (c *PlacementController) SubmitLegacy(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req LegacySubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	level := service.LevelForScore(*req.Score)
	if err := c.PlacementService.Apply(claims.UserID, level); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"level": level})
}
