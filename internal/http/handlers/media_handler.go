package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/dix-marketplace/backend/internal/http/dto"
	"github.com/dix-marketplace/backend/internal/media"
	"github.com/dix-marketplace/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MediaHandler struct {
	sessions *services.SessionService
	log      *zap.Logger
}

func NewMediaHandler(sessions *services.SessionService, log *zap.Logger) *MediaHandler {
	return &MediaHandler{sessions: sessions, log: log}
}

// UploadGallery accepts a multipart batch under the "files" field. The
// whole batch is rejected when it would overflow the gallery; otherwise
// invalid files are reported per-file and valid ones are added.
func (h *MediaHandler) UploadGallery(c *fiber.Ctx) error {
	session, ok := resolveSession(c, h.sessions)
	if !ok {
		return nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "multipart form expected"})
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "no files provided"})
	}

	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		f, err := readUpload(fh)
		if err != nil {
			h.log.Warn("failed to read upload", zap.String("name", fh.Filename), zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "failed to read uploaded file"})
		}
		files = append(files, f)
	}

	added, rejected, err := session.Media.AddFiles(files)
	if err != nil {
		var capErr *media.CapacityError
		if errors.As(err, &capErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: capErr.Error()})
		}
		h.log.Error("gallery upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	resp := dto.UploadResponse{Added: added}
	for _, fe := range rejected {
		resp.Rejected = append(resp.Rejected, dto.UploadFailure{Name: fe.Name, Reason: fe.Err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: resp})
}

// UploadVerification inserts or replaces the image for one verification
// role.
func (h *MediaHandler) UploadVerification(c *fiber.Ctx) error {
	session, ok := resolveSession(c, h.sessions)
	if !ok {
		return nil
	}
	role := c.Params("role")

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "file is required"})
	}
	f, err := readUpload(fh)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "failed to read uploaded file"})
	}

	img, err := session.Media.SetVerificationImage(role, f)
	if err != nil {
		var fileErr *media.FileError
		if errors.As(err, &fileErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: fileErr.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: img})
}

func (h *MediaHandler) GetMedia(c *fiber.Ctx) error {
	session, ok := resolveSession(c, h.sessions)
	if !ok {
		return nil
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.MediaStateResponse{
		Gallery:              session.Media.Gallery(),
		VerificationImages:   session.Media.VerificationImages(),
		VerificationComplete: session.Media.VerificationComplete(),
	}})
}

func (h *MediaHandler) SetPrimary(c *fiber.Ctx) error {
	session, ok := resolveSession(c, h.sessions)
	if !ok {
		return nil
	}

	if !session.Media.SetPrimary(c.Params("imageId")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "image not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: session.Media.Gallery()})
}

func (h *MediaHandler) RemoveImage(c *fiber.Ctx) error {
	session, ok := resolveSession(c, h.sessions)
	if !ok {
		return nil
	}
	if !session.Media.Remove(c.Params("imageId")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "image not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: session.Media.Gallery()})
}

func readUpload(fh *multipart.FileHeader) (media.File, error) {
	src, err := fh.Open()
	if err != nil {
		return media.File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return media.File{}, err
	}
	return media.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
