package handlers

import (
	"github.com/dix-marketplace/backend/internal/catalog"
	"github.com/dix-marketplace/backend/internal/http/dto"
	"github.com/gofiber/fiber/v2"
)

// MetaHandler serves the static reference data the wizard forms are
// built from.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type cityMeta struct {
	Name    string                `json:"name"`
	Regions []catalog.RegionGroup `json:"regions,omitempty"`
}

func (h *MetaHandler) GetCities(c *fiber.Ctx) error {
	cities := catalog.Cities()
	out := make([]cityMeta, 0, len(cities))
	for _, name := range cities {
		out = append(out, cityMeta{Name: name, Regions: catalog.CityRegions[name]})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: out})
}

func (h *MetaHandler) GetPackages(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: catalog.Packages()})
}

func (h *MetaHandler) GetAttributes(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{
		"nationalities": catalog.Nationalities,
		"eye_colors":    catalog.EyeColors,
		"hair_colors":   catalog.HairColors,
	}})
}
