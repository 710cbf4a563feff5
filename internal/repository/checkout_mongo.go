package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wearly/backend/internal/domain"
)

type mongoCheckoutRepository struct {
	collection *mongo.Collection
}

func NewMongoCheckoutRepository(db *mongo.Database) CheckoutRepository {
	return &mongoCheckoutRepository{
		collection: db.Collection("checkouts"),
	}
}

func (m *mongoCheckoutRepository) Insert(ctx context.Context, session *domain.CheckoutSession) error {
	session.CreatedAt = time.Now()

	if _, err := m.collection.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create checkout session: %w", err)
	}
	return nil
}

func (m *mongoCheckoutRepository) FindByID(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	var session domain.CheckoutSession

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	return &session, nil
}

func (m *mongoCheckoutRepository) SetPaid(ctx context.Context, id string, details any, paidAt time.Time) error {
	// A finalized session is immutable, so the filter excludes it.
	filter := bson.M{"_id": id, "is_finalized": false}
	update := bson.M{
		"$set": bson.M{
			"is_paid":         true,
			"payment_status":  domain.PaymentStatusPaid,
			"payment_details": details,
			"paid_at":         paidAt,
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark checkout paid: %w", err)
	}
	if result.MatchedCount == 0 {
		return m.classifyMiss(ctx, id)
	}
	return nil
}

func (m *mongoCheckoutRepository) Finalize(ctx context.Context, id string, finalizedAt time.Time) error {
	// The filter encodes the only legal transition; a matched update is the
	// exactly-once claim on this session.
	filter := bson.M{"_id": id, "is_paid": true, "is_finalized": false}
	update := bson.M{
		"$set": bson.M{
			"is_finalized": true,
			"finalized_at": finalizedAt,
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to finalize checkout: %w", err)
	}
	if result.MatchedCount == 0 {
		return m.classifyMiss(ctx, id)
	}
	return nil
}

// classifyMiss re-reads the session to tell the caller why a conditional
// update matched nothing.
func (m *mongoCheckoutRepository) classifyMiss(ctx context.Context, id string) error {
	session, err := m.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if session.IsFinalized {
		return ErrSessionFinalized
	}
	if !session.IsPaid {
		return ErrSessionNotPaid
	}
	return ErrSessionNotFound
}
