package domain

import "errors"

const (
	RoleAdmin    = "admin"
	RoleClient   = "client"
	RoleCustomer = "customer"
)

var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNoSession = errors.New("no active session")
var ErrForbidden = errors.New("access forbidden")

// User models an authenticated actor in the portal. Immutable once issued by
// the credential validator; only the session store holds a current one.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	// ClientID links a client-role user to its CRM client record.
	ClientID string `json:"client_id,omitempty"`
	// CustomerID links a customer-role user to its CRM customer record.
	CustomerID string `json:"customer_id,omitempty"`
}

// ValidRole reports whether role is one of the three portal roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleClient, RoleCustomer:
		return true
	}
	return false
}

// NavLink is a navigation affordance offered to a role. Advisory UI metadata
// only, not a security boundary.
type NavLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// NavigationFor maps a role to its dashboard navigation links. Unknown roles
// get an empty set.
func NavigationFor(role string) []NavLink {
	switch role {
	case RoleAdmin:
		return []NavLink{{Href: "/admin", Label: "All Clients"}}
	case RoleClient:
		return []NavLink{{Href: "/client", Label: "My Customers"}}
	case RoleCustomer:
		return []NavLink{{Href: "/customer", Label: "My Projects"}}
	default:
		return []NavLink{}
	}
}
