package controller

import (
	"errors"

	"deepeng_backend/internal/model"
	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DictionaryController struct {
	DictionaryService *service.DictionaryService
}

func NewDictionaryController(dictionaryService *service.DictionaryService) *DictionaryController {
	return &DictionaryController{DictionaryService: dictionaryService}
}

// Lookup godoc
// @Summary Look up a word
// @Description Case-insensitive; served through the Redis cache
// @Tags dictionary
// @Produce json
// @Security BearerAuth
// @Param word path string true "word to look up"
// @Success 200 {object} util.Response{data=model.DictionaryEntry}
// @Failure 404 {object} util.Response
// @Router /api/dictionary/{word} [get]
func (c *DictionaryController) Lookup(ctx *gin.Context) {
	entry, err := c.DictionaryService.Lookup(ctx.Request.Context(), ctx.Param("word"))
	if err != nil {
		if errors.Is(err, util.ErrWordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entry)
}

// List godoc
// @Summary List all dictionary entries
// @Tags dictionary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.DictionaryEntry}
// @Router /api/dictionary [get]
func (c *DictionaryController) List(ctx *gin.Context) {
	entries, err := c.DictionaryService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Save godoc
// @Summary Create or update a dictionary entry
// @Tags dictionary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.DictionaryEntry true "entry"
// @Success 200 {object} util.Response{data=model.DictionaryEntry}
// @Failure 400 {object} util.Response
// @Router /api/editor/dictionary [post]
func (c *DictionaryController) Save(ctx *gin.Context) {
	var entry model.DictionaryEntry
	if err := ctx.ShouldBindJSON(&entry); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if entry.Word == "" {
		util.BadRequest(ctx, "word is required")
		return
	}

	if err := c.DictionaryService.Save(ctx.Request.Context(), &entry); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entry)
}
