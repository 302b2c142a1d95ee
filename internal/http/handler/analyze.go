package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"notepilot/internal/extractor"
	"notepilot/internal/logging"
	"notepilot/internal/model"
	"notepilot/internal/service"
)

// UploadAndAnalyze godoc
// @Summary      Extract and clean the text of an image or PDF
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "image or PDF"
// @Success      200  {object}  model.UploadResult
// @Failure      400  {object}  errorPayload
// @Failure      422  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Router       /api/upload_and_analyze [post]
func UploadAndAnalyze(svc service.UploadService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "cannot read uploaded file")
		}

		ct := fh.Header.Get("Content-Type")
		res, err := svc.Analyze(c.UserContext(), data, fh.Filename, ct)
		if err != nil {
			var ume *extractor.UnsupportedMediaTypeError
			if errors.As(err, &ume) {
				return writeError(c, fiber.StatusBadRequest, ume.Error())
			}
			log.Error("upload_and_analyze_failed", err, map[string]any{
				"request_id":   requestIDFromCtx(c),
				"filename":     fh.Filename,
				"content_type": ct,
			})
			return writeError(c, fiber.StatusInternalServerError, "Internal Server Error: "+err.Error())
		}
		return c.JSON(res)
	}
}

// Analyze godoc
// @Summary      Run a command over optional context text
// @Description  Generation failures are reported with status 200 and source "Error Handler".
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body  model.AnalyzeRequest  false  "all fields optional"
// @Success      200  {object}  model.AnalyzeResponse
// @Failure      400  {object}  errorPayload
// @Failure      422  {object}  errorPayload
// @Router       /api/analyze [post]
func Analyze(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := model.DefaultAnalyzeRequest()
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusUnprocessableEntity, "invalid request body")
			}
		}

		res, err := svc.Analyze(c.UserContext(), req)
		if err != nil {
			var uce *service.UnknownCommandError
			if errors.As(err, &uce) {
				return writeError(c, fiber.StatusBadRequest, uce.Error())
			}
			res = &model.AnalyzeResponse{
				Command:  req.Command,
				Answer:   "An error occurred while processing your request: " + err.Error(),
				Source:   model.SourceErrorHandler,
				Citation: model.CitationNone,
			}
		}
		return c.JSON(res)
	}
}
