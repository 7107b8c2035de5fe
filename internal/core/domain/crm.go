package domain

import "time"

// The portal fronts an external CRM/business system. These are the three
// record projections it consumes; the CRM itself is out of scope and is
// modelled by the directory ports.

// Client is a CRM client (account) record.
type Client struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	Company      string    `json:"company" bson:"company"`
	Status       string    `json:"status" bson:"status"`
	CreatedDate  time.Time `json:"created_date" bson:"created_date"`
	LastActivity time.Time `json:"last_activity" bson:"last_activity"`
}

// Customer is an end customer belonging to a client. ProjectIDs lists the
// projects the customer is involved in.
type Customer struct {
	ID         string   `json:"id" bson:"_id"`
	Name       string   `json:"name" bson:"name"`
	Email      string   `json:"email" bson:"email"`
	Phone      string   `json:"phone" bson:"phone"`
	ClientID   string   `json:"client_id" bson:"client_id"`
	ProjectIDs []string `json:"project_ids" bson:"project_ids"`
	TotalSpent float64  `json:"total_spent" bson:"total_spent"`
	Status     string   `json:"status" bson:"status"`
}

// Project is a piece of work delivered to a client.
type Project struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Status      string    `json:"status" bson:"status"`
	ClientID    string    `json:"client_id" bson:"client_id"`
	ClientName  string    `json:"client_name" bson:"client_name"`
	StartDate   time.Time `json:"start_date" bson:"start_date"`
	EndDate     time.Time `json:"end_date" bson:"end_date"`
	Progress    int       `json:"progress" bson:"progress"`
	Budget      float64   `json:"budget" bson:"budget"`
	AssignedTo  []string  `json:"assigned_to" bson:"assigned_to"`
}
