package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
)

// The three resource adapters share the same matching semantics:
// case-insensitive substring match against the record's textual fields,
// hits ordered by the resource's natural id order.

func matchesAny(query string, fields ...string) bool {
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func sortHitsByID(hits []domain.SearchHit) {
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].ID < hits[j].ID })
}

// ClientSearchAdapter searches CRM client records.
type ClientSearchAdapter struct {
	dir ports.ClientDirectory
}

func NewClientSearchAdapter(dir ports.ClientDirectory) *ClientSearchAdapter {
	return &ClientSearchAdapter{dir: dir}
}

func (a *ClientSearchAdapter) Type() domain.ResourceType { return domain.ResourceClient }

func (a *ClientSearchAdapter) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	clients, err := a.dir.ListAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("client search: %w", err)
	}

	hits := make([]domain.SearchHit, 0, len(clients))
	for _, c := range clients {
		if !matchesAny(query, c.Name, c.Email, c.Company) {
			continue
		}
		hits = append(hits, domain.SearchHit{
			Type:        domain.ResourceClient,
			ID:          c.ID,
			Title:       c.Name,
			Subtitle:    c.Company,
			Status:      c.Status,
			Description: c.Email,
		})
	}
	sortHitsByID(hits)
	return hits, nil
}

// CustomerSearchAdapter searches CRM customer records.
type CustomerSearchAdapter struct {
	dir ports.CustomerDirectory
}

func NewCustomerSearchAdapter(dir ports.CustomerDirectory) *CustomerSearchAdapter {
	return &CustomerSearchAdapter{dir: dir}
}

func (a *CustomerSearchAdapter) Type() domain.ResourceType { return domain.ResourceCustomer }

func (a *CustomerSearchAdapter) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	customers, err := a.dir.ListAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("customer search: %w", err)
	}

	hits := make([]domain.SearchHit, 0, len(customers))
	for _, c := range customers {
		if !matchesAny(query, c.Name, c.Email) {
			continue
		}
		hits = append(hits, domain.SearchHit{
			Type:     domain.ResourceCustomer,
			ID:       c.ID,
			Title:    c.Name,
			Subtitle: c.Email,
			Status:   c.Status,
		})
	}
	sortHitsByID(hits)
	return hits, nil
}

// ProjectSearchAdapter searches CRM project records.
type ProjectSearchAdapter struct {
	dir ports.ProjectDirectory
}

func NewProjectSearchAdapter(dir ports.ProjectDirectory) *ProjectSearchAdapter {
	return &ProjectSearchAdapter{dir: dir}
}

func (a *ProjectSearchAdapter) Type() domain.ResourceType { return domain.ResourceProject }

func (a *ProjectSearchAdapter) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	projects, err := a.dir.ListAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("project search: %w", err)
	}

	hits := make([]domain.SearchHit, 0, len(projects))
	for _, p := range projects {
		if !matchesAny(query, p.Title, p.Description, p.ClientName) {
			continue
		}
		hits = append(hits, domain.SearchHit{
			Type:        domain.ResourceProject,
			ID:          p.ID,
			Title:       p.Title,
			Subtitle:    p.ClientName,
			Status:      p.Status,
			Description: p.Description,
		})
	}
	sortHitsByID(hits)
	return hits, nil
}
