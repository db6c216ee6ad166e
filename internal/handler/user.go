package handler

import (
	"net/http"

	"paint-it-black-manufacturer/internal/dto"
	"paint-it-black-manufacturer/internal/middleware"
	"paint-it-black-manufacturer/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) IssueToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.TokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := h.userService.IssueToken(ctx, req.IDToken)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *UserHandler) UpsertUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, created, err := h.userService.Register(ctx, service.RegisterUserRequest{
		Caller: middleware.IdentityFrom(c),
		Email:  req.Email,
		Name:   req.Name,
		Photo:  req.Photo,
	})
	if err != nil {
		return respondError(err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, dto.UpsertUserResponse{User: dto.NewUserResponse(user), Created: created})
}

func (h *UserHandler) GetRole(c echo.Context) error {
	ctx := c.Request().Context()

	role, err := h.userService.Role(ctx, middleware.IdentityFrom(c))
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, dto.RoleResponse{Role: string(role)})
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.List(ctx, middleware.IdentityFrom(c))
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, dto.Map(users, dto.NewUserResponse))
}
