package ports

import (
	"context"

	"github.com/projecthub/portal-api/internal/core/domain"
)

// ClientDirectory exposes the CRM client collection.
type ClientDirectory interface {
	// ListAll returns clients matching query (all clients when query is
	// empty), in natural id order.
	ListAll(ctx context.Context, query string) ([]domain.Client, error)
}

// CustomerDirectory exposes the CRM customer collection.
type CustomerDirectory interface {
	ListAll(ctx context.Context, query string) ([]domain.Customer, error)
	// ListByClient returns the customers belonging to one client.
	ListByClient(ctx context.Context, clientID string) ([]domain.Customer, error)
	// GetByID returns one customer record, or domain.ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// ProjectDirectory exposes the CRM project collection.
type ProjectDirectory interface {
	ListAll(ctx context.Context, query string) ([]domain.Project, error)
	// ListByIDs returns the projects with the given ids, in id order.
	ListByIDs(ctx context.Context, ids []string) ([]domain.Project, error)
}

// SearchAdapter turns a query into zero or more typed hits for a single
// resource type. "No matches" is an empty slice, never an error; errors are
// reserved for transport-level failure, which the aggregator isolates.
type SearchAdapter interface {
	Type() domain.ResourceType
	Search(ctx context.Context, query string) ([]domain.SearchHit, error)
}

// SearchService fans one query out across all registered adapters and merges
// the hits in adapter registration order.
type SearchService interface {
	Search(ctx context.Context, query string) ([]domain.SearchHit, error)
}
