package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/portal-api/internal/core/domain"
)

type stubClientDirectory struct {
	clients []domain.Client
	err     error
}

func (d *stubClientDirectory) ListAll(_ context.Context, _ string) ([]domain.Client, error) {
	return d.clients, d.err
}

type stubCustomerDirectory struct {
	customers map[string]*domain.Customer
	byClient  map[string][]domain.Customer
	err       error
}

func (d *stubCustomerDirectory) ListAll(_ context.Context, _ string) ([]domain.Customer, error) {
	return nil, d.err
}

func (d *stubCustomerDirectory) ListByClient(_ context.Context, clientID string) ([]domain.Customer, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.byClient[clientID], nil
}

func (d *stubCustomerDirectory) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	if d.err != nil {
		return nil, d.err
	}
	c, ok := d.customers[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return c, nil
}

type stubProjectDirectory struct {
	projects []domain.Project
	gotIDs   []string
	err      error
}

func (d *stubProjectDirectory) ListAll(_ context.Context, _ string) ([]domain.Project, error) {
	return d.projects, d.err
}

func (d *stubProjectDirectory) ListByIDs(_ context.Context, ids []string) ([]domain.Project, error) {
	d.gotIDs = ids
	if d.err != nil {
		return nil, d.err
	}
	out := []domain.Project{}
	for _, p := range d.projects {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func newDashboardHandler(clients *stubClientDirectory, customers *stubCustomerDirectory, projects *stubProjectDirectory) *DashboardHandler {
	if clients == nil {
		clients = &stubClientDirectory{}
	}
	if customers == nil {
		customers = &stubCustomerDirectory{}
	}
	if projects == nil {
		projects = &stubProjectDirectory{}
	}
	return NewDashboardHandler(clients, customers, projects)
}

func TestListClients_ReturnsAll(t *testing.T) {
	h := newDashboardHandler(&stubClientDirectory{clients: []domain.Client{
		{ID: "1", Name: "Acme Corporation"},
		{ID: "2", Name: "Tech Solutions Ltd"},
	}}, nil, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/clients", "")
	c.Set("user", &domain.User{ID: "u1", Role: domain.RoleAdmin})
	if err := h.ListClients(c); err != nil {
		t.Fatalf("list clients failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var clients []domain.Client
	if err := json.Unmarshal(rec.Body.Bytes(), &clients); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(clients))
	}
}

func TestListClients_WithoutGuardIdentity(t *testing.T) {
	h := newDashboardHandler(nil, nil, nil)

	c, _ := newTestContext(http.MethodGet, "/v1/clients", "")
	err := h.ListClients(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestListCustomers_ScopedToCallersClient(t *testing.T) {
	customers := &stubCustomerDirectory{byClient: map[string][]domain.Customer{
		"1": {{ID: "1", Name: "Jane Customer", ClientID: "1"}},
		"2": {{ID: "2", Name: "Bob Smith", ClientID: "2"}},
	}}
	h := newDashboardHandler(nil, customers, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/customers", "")
	c.Set("user", &domain.User{ID: "u2", Role: domain.RoleClient, ClientID: "1"})
	if err := h.ListCustomers(c); err != nil {
		t.Fatalf("list customers failed: %v", err)
	}

	var got []domain.Customer
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Jane Customer" {
		t.Fatalf("expected only the caller's customers, got %+v", got)
	}
}

func TestListCustomers_SessionWithoutClientLink(t *testing.T) {
	h := newDashboardHandler(nil, nil, nil)

	c, _ := newTestContext(http.MethodGet, "/v1/customers", "")
	c.Set("user", &domain.User{ID: "u2", Role: domain.RoleClient})
	err := h.ListCustomers(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestListProjects_ResolvesCustomerProjects(t *testing.T) {
	customers := &stubCustomerDirectory{customers: map[string]*domain.Customer{
		"1": {ID: "1", Name: "Jane Customer", ProjectIDs: []string{"1"}},
	}}
	projects := &stubProjectDirectory{projects: []domain.Project{
		{ID: "1", Title: "Website Redesign"},
		{ID: "2", Title: "Mobile App Development"},
	}}
	h := newDashboardHandler(nil, customers, projects)

	c, rec := newTestContext(http.MethodGet, "/v1/projects", "")
	c.Set("user", &domain.User{ID: "u3", Role: domain.RoleCustomer, CustomerID: "1"})
	if err := h.ListProjects(c); err != nil {
		t.Fatalf("list projects failed: %v", err)
	}

	var got []domain.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Website Redesign" {
		t.Fatalf("expected only the customer's projects, got %+v", got)
	}
	if len(projects.gotIDs) != 1 || projects.gotIDs[0] != "1" {
		t.Fatalf("directory queried with ids %v", projects.gotIDs)
	}
}

func TestListProjects_UnknownCustomerRecordIsEmptyList(t *testing.T) {
	h := newDashboardHandler(nil, &stubCustomerDirectory{}, nil)

	c, rec := newTestContext(http.MethodGet, "/v1/projects", "")
	c.Set("user", &domain.User{ID: "u3", Role: domain.RoleCustomer, CustomerID: "404"})
	if err := h.ListProjects(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got []domain.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}
