package controller

import (
	"os"
	"path/filepath"
	"strings"

	"deepeng_backend/internal/service"
	"deepeng_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadController struct {
	StorageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{StorageService: storageService}
}

var allowedAudioExt = map[string]bool{
	".mp3": true,
	".ogg": true,
	".wav": true,
	".m4a": true,
}

// UploadAudio godoc
// @Summary Upload a pronunciation audio file
// @Description Stores the file under the module's folder and returns its URL plus probed duration
// @Tags editor
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param module_title formData string true "module the audio belongs to"
// @Param file formData file true "audio file"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/editor/upload-audio [post]
func (c *UploadController) UploadAudio(ctx *gin.Context) {
	moduleTitle := ctx.PostForm("module_title")
	if moduleTitle == "" {
		util.BadRequest(ctx, "module_title is required")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedAudioExt[ext] {
		util.BadRequest(ctx, "unsupported audio format")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.StorageService.SaveAudio(ctx.Request.Context(), moduleTitle, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// Probe for duration when the file landed on local disk. Metadata
	// only; a probe failure never fails the upload.
	var info *util.AudioInfo
	if local, ok := c.StorageService.Provider.(*service.LocalStorageProvider); ok {
		path := filepath.Join(local.Config.LocalPath, strings.TrimPrefix(url, "/pronounce/"))
		if _, statErr := os.Stat(path); statErr == nil {
			if probed, probeErr := util.GetAudioInfo(path); probeErr == nil {
				info = probed
			} else {
				zap.L().Debug("audio probe failed", zap.String("path", path), zap.Error(probeErr))
			}
		}
	}

	util.Created(ctx, gin.H{"url": url, "info": info})
}
