package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/projecthub/portal-api/internal/core/domain"
)

const identityCollection = "portal_users"

// MongoIdentityRepository is the identity-store collaborator backed by the
// portal_users collection.
type MongoIdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *MongoIdentityRepository {
	return &MongoIdentityRepository{coll: db.Collection(identityCollection)}
}

type mongoIdentity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email,omitempty"`
	ClientID     string             `bson:"client_id,omitempty"`
	CustomerID   string             `bson:"customer_id,omitempty"`
}

func (r *MongoIdentityRepository) FindByUsernameRole(ctx context.Context, username, role string) (*domain.User, error) {
	var mi mongoIdentity
	filter := bson.M{"username": username, "role": role}
	if err := r.coll.FindOne(ctx, filter).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}

	return &domain.User{
		ID:         mi.ID.Hex(),
		Username:   mi.Username,
		Role:       mi.Role,
		Name:       mi.Name,
		Email:      mi.Email,
		ClientID:   mi.ClientID,
		CustomerID: mi.CustomerID,
	}, nil
}

func (r *MongoIdentityRepository) PasswordHash(ctx context.Context, username string) (string, error) {
	var mi mongoIdentity
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find identity secret: %w", err)
	}
	return mi.PasswordHash, nil
}
