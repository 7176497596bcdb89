package handlers

import (
	"errors"

	"github.com/dix-marketplace/backend/internal/http/dto"
	"github.com/dix-marketplace/backend/internal/middleware"
	"github.com/dix-marketplace/backend/internal/repositories"
	"github.com/dix-marketplace/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdHandler struct {
	ads *services.AdService
	log *zap.Logger
}

func NewAdHandler(ads *services.AdService, log *zap.Logger) *AdHandler {
	return &AdHandler{ads: ads, log: log}
}

func (h *AdHandler) ListMyAds(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	ads, err := h.ads.ListByUser(c.Context(), userID, limit, offset)
	if err != nil {
		h.log.Error("failed to list ads", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: ads})
}

func (h *AdHandler) GetAd(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
	}

	ad, err := h.ads.GetByID(c.Context(), c.Params("id"), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "ad not found"})
		}
		h.log.Error("failed to get ad", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: ad})
}
