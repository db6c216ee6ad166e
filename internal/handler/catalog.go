package handler

import (
	"net/http"
	"strconv"

	"paint-it-black-manufacturer/internal/dto"
	"paint-it-black-manufacturer/internal/middleware"
	"paint-it-black-manufacturer/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListTools(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	tools, err := h.catalogService.ListTools(ctx, limit)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, dto.Map(tools, dto.NewToolResponse))
}

func (h *CatalogHandler) GetTool(c echo.Context) error {
	ctx := c.Request().Context()

	tool, err := h.catalogService.GetTool(ctx, c.Param("id"))
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, dto.NewToolResponse(tool))
}

func (h *CatalogHandler) CreateTool(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ToolRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tool, err := h.catalogService.CreateTool(ctx, service.CreateToolRequest{
		Caller:       middleware.IdentityFrom(c),
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Price:        req.Price,
		MinimumOrder: req.MinimumOrder,
		Available:    req.Available,
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, dto.NewToolResponse(tool))
}

func (h *CatalogHandler) AddReview(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	review, err := h.catalogService.AddReview(ctx, service.CreateReviewRequest{
		Caller:  middleware.IdentityFrom(c),
		ToolID:  req.ToolID,
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusCreated, dto.NewReviewResponse(review))
}

func (h *CatalogHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.catalogService.ListReviews(ctx, c.QueryParam("tool_id"))
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, dto.Map(reviews, dto.NewReviewResponse))
}
