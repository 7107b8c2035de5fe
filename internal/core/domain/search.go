package domain

import "errors"

// ResourceType identifies which search adapter produced a hit.
type ResourceType string

const (
	ResourceClient   ResourceType = "client"
	ResourceCustomer ResourceType = "customer"
	ResourceProject  ResourceType = "project"
)

var ErrSearchUnavailable = errors.New("search unavailable")
var ErrRecordNotFound = errors.New("record not found")

// MinQueryLength is the shortest query that is dispatched to adapters.
// Anything shorter is defined as an empty query and resolves to zero hits
// without touching any adapter.
const MinQueryLength = 2

// SearchHit is a single typed result from one resource adapter. Transient:
// it exists only for the duration of one search response cycle.
type SearchHit struct {
	Type        ResourceType `json:"type"`
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Status      string       `json:"status,omitempty"`
	Description string       `json:"description,omitempty"`
}
