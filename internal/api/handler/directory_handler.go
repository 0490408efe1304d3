package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketplace/identity-service/internal/api/metrics"
	"github.com/marketplace/identity-service/internal/core/domain"
	"github.com/marketplace/identity-service/internal/core/ports"
)

// DirectoryHandler serves the read-only account listings.
type DirectoryHandler struct {
	directory ports.DirectoryService
}

func NewDirectoryHandler(directory ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

type usersResponse struct {
	Users []domain.AccountSummary `json:"users"`
}

// ListAll returns every account summary. An empty directory is a success.
//
// @Summary      List all accounts
// @Tags         directory
// @Produce      json
// @Success      200  {object}  usersResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/users [get]
func (h *DirectoryHandler) ListAll(c echo.Context) error {
	users, err := h.directory.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.DirectoryRequestsTotal.WithLabelValues("all").Inc()
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// ListByRole returns the accounts holding the requested role. An empty
// filtered result is 404, distinct from an empty unfiltered directory.
//
// @Summary      List accounts by role
// @Tags         directory
// @Produce      json
// @Param        role  path      string  true  "Account role"
// @Success      200   {object}  usersResponse
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users/{role} [get]
func (h *DirectoryHandler) ListByRole(c echo.Context) error {
	role := c.Param("role")

	users, err := h.directory.ListByRole(c.Request().Context(), role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("no accounts found with role: %s", role))
		}
		return err
	}

	metrics.DirectoryRequestsTotal.WithLabelValues(role).Inc()
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}
