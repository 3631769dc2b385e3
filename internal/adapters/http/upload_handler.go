package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unimedia/agencysite/internal/domain/entities"
	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/ports"
)

// UploadFormField is the multipart field carrying the image
const UploadFormField = "image"

// UploadHandler handles image uploads
type UploadHandler struct {
	uploadService ports.UploadService
	logger        *logger.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService ports.UploadService, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

// UploadImage godoc
// @Summary Upload an image
// @Description Store one image under the folder of the given type (unknown types use misc)
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param type path string true "Upload folder"
// @Param image formData file true "Image file"
// @Success 200 {object} ports.UploadResponse
// @Failure 400 {object} ports.ErrorResponse
// @Router /upload/{type} [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile(UploadFormField)
	if err != nil {
		return httpError(h.logger, entities.ErrNoFile)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return httpError(h.logger, err)
	}
	defer src.Close()

	stored, err := h.uploadService.Upload(c.Request().Context(), c.Param("type"), fileHeader.Filename, src)
	if err != nil {
		return httpError(h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.UploadResponse{
		Success:  true,
		Path:     stored.Path,
		Filename: stored.Filename,
	})
}
