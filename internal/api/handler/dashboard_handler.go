package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
)

// DashboardHandler serves the role-scoped listings behind each dashboard
// view: all clients for admins, a client's customers for client users, a
// customer's projects for customer users.
type DashboardHandler struct {
	clients   ports.ClientDirectory
	customers ports.CustomerDirectory
	projects  ports.ProjectDirectory
}

func NewDashboardHandler(clients ports.ClientDirectory, customers ports.CustomerDirectory, projects ports.ProjectDirectory) *DashboardHandler {
	return &DashboardHandler{clients: clients, customers: customers, projects: projects}
}

// ListClients handles GET /v1/clients (admin only).
//
// @Summary      List all CRM clients
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/clients [get]
func (h *DashboardHandler) ListClients(c echo.Context) error {
	if _, err := ctxUser(c); err != nil {
		return err
	}

	clients, err := h.clients.ListAll(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// ListCustomers handles GET /v1/customers (client role only).
//
// @Summary      List the caller's customers
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Customer
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/customers [get]
func (h *DashboardHandler) ListCustomers(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if user.ClientID == "" {
		// Structurally valid session but operationally unusable for this view.
		return echo.NewHTTPError(http.StatusUnauthorized, "session missing client identity")
	}

	customers, err := h.customers.ListByClient(c.Request().Context(), user.ClientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// ListProjects handles GET /v1/projects (customer role only).
//
// @Summary      List the caller's projects
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Project
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/projects [get]
func (h *DashboardHandler) ListProjects(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	if user.CustomerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "session missing customer identity")
	}

	customer, err := h.customers.GetByID(c.Request().Context(), user.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, []domain.Project{})
		}
		return err
	}

	projects, err := h.projects.ListByIDs(c.Request().Context(), customer.ProjectIDs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}
