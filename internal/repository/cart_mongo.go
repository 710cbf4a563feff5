package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wearly/backend/internal/domain"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("carts"),
	}
}

func ownerFilter(owner domain.CartOwner) bson.M {
	if owner.Kind == domain.OwnerUser {
		return bson.M{"user_id": owner.ID}
	}
	return bson.M{"guest_id": owner.ID}
}

func (m *mongoCartRepository) FindByOwner(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	var cart domain.Cart

	err := m.collection.FindOne(ctx, ownerFilter(owner)).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (m *mongoCartRepository) Insert(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	cart.CreatedAt = now
	cart.UpdatedAt = now
	cart.Version = 1

	if _, err := m.collection.InsertOne(ctx, cart); err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

func (m *mongoCartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	readVersion := cart.Version
	cart.Version = readVersion + 1
	cart.UpdatedAt = time.Now()

	// Replace only if nobody bumped the version since our read.
	filter := bson.M{"_id": cart.ID, "version": readVersion}
	result, err := m.collection.ReplaceOne(ctx, filter, cart)
	if err != nil {
		cart.Version = readVersion
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if result.MatchedCount == 0 {
		cart.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}

func (m *mongoCartRepository) Delete(ctx context.Context, owner domain.CartOwner) error {
	result, err := m.collection.DeleteOne(ctx, ownerFilter(owner))
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	// Partial filters keep the unique constraints from colliding on carts
	// that only carry the other identity field.
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"user_id": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "guest_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"guest_id": bson.M{"$exists": true}}),
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}
	return nil
}
