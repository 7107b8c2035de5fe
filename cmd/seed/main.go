// Command seed loads development fixtures: the three demo identities and a
// small set of CRM records, enough to exercise every dashboard view and the
// unified search.
package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/infrastructure/config"
	mongodb "github.com/projecthub/portal-api/internal/infrastructure/db/mongo"
	"github.com/projecthub/portal-api/pkg/logger"
)

type seedUser struct {
	Username   string
	Password   string
	Role       string
	Name       string
	Email      string
	ClientID   string
	CustomerID string
}

var seedUsers = []seedUser{
	{Username: "admin", Password: "admin123", Role: domain.RoleAdmin, Name: "System Administrator", Email: "admin@company.com"},
	{Username: "client1", Password: "client123", Role: domain.RoleClient, Name: "John Client", Email: "john@client.com", ClientID: "1"},
	{Username: "customer1", Password: "customer123", Role: domain.RoleCustomer, Name: "Jane Customer", Email: "jane@customer.com", CustomerID: "1"},
}

var seedClients = []domain.Client{
	{
		ID: "1", Name: "Acme Corporation", Email: "contact@acme.com", Phone: "+1-555-0123",
		Company: "Acme Corp", Status: "Active",
		CreatedDate: date(2024, 1, 15), LastActivity: date(2024, 12, 20),
	},
	{
		ID: "2", Name: "Tech Solutions Ltd", Email: "info@techsolutions.com", Phone: "+1-555-0456",
		Company: "Tech Solutions", Status: "Active",
		CreatedDate: date(2024, 2, 10), LastActivity: date(2024, 12, 19),
	},
}

var seedCustomers = []domain.Customer{
	{
		ID: "1", Name: "Jane Customer", Email: "jane@customer.com", Phone: "+1-555-0789",
		ClientID: "1", ProjectIDs: []string{"1"}, TotalSpent: 25000, Status: "Active",
	},
	{
		ID: "2", Name: "Bob Customer", Email: "bob@customer.com", Phone: "+1-555-0987",
		ClientID: "2", ProjectIDs: []string{"2"}, TotalSpent: 15000, Status: "Active",
	},
}

var seedProjects = []domain.Project{
	{
		ID: "1", Title: "Website Redesign", Description: "Complete website redesign with modern UI/UX",
		Status: "In Progress", ClientID: "1", ClientName: "Acme Corporation",
		StartDate: date(2024, 11, 1), EndDate: date(2024, 12, 31),
		Progress: 75, Budget: 50000, AssignedTo: []string{"John Doe", "Jane Smith"},
	},
	{
		ID: "2", Title: "Mobile App Development", Description: "Native mobile app for iOS and Android",
		Status: "Planning", ClientID: "2", ClientName: "Tech Solutions Ltd",
		StartDate: date(2024, 12, 15), EndDate: date(2025, 3, 15),
		Progress: 10, Budget: 75000, AssignedTo: []string{"Mike Johnson", "Sarah Wilson"},
	},
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := db.Collection("portal_users")
	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		doc := bson.M{
			"username":      u.Username,
			"password_hash": string(hash),
			"role":          u.Role,
			"name":          u.Name,
			"email":         u.Email,
			"client_id":     u.ClientID,
			"customer_id":   u.CustomerID,
		}
		if err := upsert(ctx, users, bson.M{"username": u.Username, "role": u.Role}, doc); err != nil {
			log.Fatal().Err(err).Str("username", u.Username).Msg("seed user")
		}
	}
	log.Info().Int("count", len(seedUsers)).Msg("users seeded")

	clients := db.Collection("crm_clients")
	for _, cl := range seedClients {
		if err := upsert(ctx, clients, bson.M{"_id": cl.ID}, cl); err != nil {
			log.Fatal().Err(err).Str("client", cl.Name).Msg("seed client")
		}
	}

	customers := db.Collection("crm_customers")
	for _, cu := range seedCustomers {
		if err := upsert(ctx, customers, bson.M{"_id": cu.ID}, cu); err != nil {
			log.Fatal().Err(err).Str("customer", cu.Name).Msg("seed customer")
		}
	}

	projects := db.Collection("crm_projects")
	for _, p := range seedProjects {
		if err := upsert(ctx, projects, bson.M{"_id": p.ID}, p); err != nil {
			log.Fatal().Err(err).Str("project", p.Title).Msg("seed project")
		}
	}
	log.Info().Msg("crm records seeded")
}

func upsert(ctx context.Context, col *mongo.Collection, filter bson.M, value any) error {
	_, err := col.ReplaceOne(ctx, filter, value, options.Replace().SetUpsert(true))
	return err
}
