package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projecthub/portal-api/internal/core/domain"
)

const (
	collectionClients   = "crm_clients"
	collectionCustomers = "crm_customers"
	collectionProjects  = "crm_projects"
)

// containsPattern builds a case-insensitive substring regex for query.
func containsPattern(query string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
}

// idOrder sorts by natural identifier order, the tie-break the adapters rely on.
var idOrder = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

// ClientDirectoryRepository serves CRM client records from Mongo.
type ClientDirectoryRepository struct {
	col *mongo.Collection
}

func NewClientDirectory(db *mongo.Database) *ClientDirectoryRepository {
	return &ClientDirectoryRepository{col: db.Collection(collectionClients)}
}

func (r *ClientDirectoryRepository) ListAll(ctx context.Context, query string) ([]domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		p := containsPattern(query)
		filter["$or"] = bson.A{
			bson.M{"name": p},
			bson.M{"email": p},
			bson.M{"company": p},
		}
	}

	cur, err := r.col.Find(ctx, filter, idOrder)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clients []domain.Client
	if err := cur.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// CustomerDirectoryRepository serves CRM customer records from Mongo.
type CustomerDirectoryRepository struct {
	col *mongo.Collection
}

func NewCustomerDirectory(db *mongo.Database) *CustomerDirectoryRepository {
	return &CustomerDirectoryRepository{col: db.Collection(collectionCustomers)}
}

func (r *CustomerDirectoryRepository) ListAll(ctx context.Context, query string) ([]domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		p := containsPattern(query)
		filter["$or"] = bson.A{
			bson.M{"name": p},
			bson.M{"email": p},
		}
	}

	cur, err := r.col.Find(ctx, filter, idOrder)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var customers []domain.Customer
	if err := cur.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerDirectoryRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"client_id": clientID}, idOrder)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var customers []domain.Customer
	if err := cur.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerDirectoryRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Customer
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ProjectDirectoryRepository serves CRM project records from Mongo.
type ProjectDirectoryRepository struct {
	col *mongo.Collection
}

func NewProjectDirectory(db *mongo.Database) *ProjectDirectoryRepository {
	return &ProjectDirectoryRepository{col: db.Collection(collectionProjects)}
}

func (r *ProjectDirectoryRepository) ListAll(ctx context.Context, query string) ([]domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		p := containsPattern(query)
		filter["$or"] = bson.A{
			bson.M{"title": p},
			bson.M{"description": p},
			bson.M{"client_name": p},
		}
	}

	cur, err := r.col.Find(ctx, filter, idOrder)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []domain.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectDirectoryRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Project, error) {
	if len(ids) == 0 {
		return []domain.Project{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, idOrder)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []domain.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
