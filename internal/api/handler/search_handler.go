package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
)

// SearchHandler serves one-shot unified search across all resource types.
type SearchHandler struct {
	service ports.SearchService
}

func NewSearchHandler(service ports.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

type searchResponse struct {
	Query string             `json:"query"`
	Hits  []domain.SearchHit `json:"hits"`
}

// Search handles GET /v1/search?q=.
//
// Queries shorter than two characters resolve to an empty hit list without
// reaching any adapter, mirroring the behaviour of the interactive session.
//
// @Summary      Unified search across clients, customers, and projects
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Query string"
// @Success      200  {object}  searchResponse
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /v1/search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")

	hits, err := h.service.Search(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, searchResponse{Query: query, Hits: hits})
}
