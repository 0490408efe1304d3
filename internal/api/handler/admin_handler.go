package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/identity-service/internal/core/ports"
)

// AdminHandler exposes the administrative account operations. The account
// core never mutates accounts; deletion lives here, outside the auth flows.
type AdminHandler struct {
	directory ports.DirectoryService
	admin     ports.AdminService
}

func NewAdminHandler(directory ports.DirectoryService, admin ports.AdminService) *AdminHandler {
	return &AdminHandler{directory: directory, admin: admin}
}

// ListAll mirrors the public directory listing on the admin surface.
//
// @Summary      List all accounts (admin)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      500  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListAll(c echo.Context) error {
	users, err := h.directory.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// DeleteUser removes an account by ID.
//
// @Summary      Delete an account
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.admin.DeleteAccount(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// DeleteSeller removes a seller account by ID; a non-seller ID is 404.
//
// @Summary      Delete a seller account
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /admin/sellers/{id} [delete]
func (h *AdminHandler) DeleteSeller(c echo.Context) error {
	if err := h.admin.DeleteSeller(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Seller deleted successfully"})
}
