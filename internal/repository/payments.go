package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bistro-boss/internal/database"
	"bistro-boss/internal/models"
)

type PaymentRepository struct {
	db       *database.MongoDB
	payments *mongo.Collection
	carts    *mongo.Collection
}

func NewPaymentRepository(db *database.MongoDB) *PaymentRepository {
	return &PaymentRepository{
		db:       db,
		payments: db.Collection(database.CollectionPayments),
		carts:    db.Collection(database.CollectionCarts),
	}
}

// ListByEmail returns an owner's payment history, newest first.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return findAll[models.Payment](ctx, r.payments, bson.M{"email": email}, opts)
}

// Checkout stores the payment and removes the cart items it paid for. Every cart id
// must belong to the payer. When transactions are enabled the check, insert and delete
// commit together.
func (r *PaymentRepository) Checkout(ctx context.Context, p *models.Payment) (models.CheckoutResult, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}

	var result models.CheckoutResult
	err := r.db.WithTransaction(ctx, func(ctx context.Context) error {
		foreign, err := r.carts.CountDocuments(ctx, bson.M{
			"_id":   bson.M{"$in": p.CartIDs},
			"email": bson.M{"$ne": p.Email},
		})
		if err != nil {
			return fmt.Errorf("check cart ownership: %w", err)
		}
		if foreign > 0 {
			return fmt.Errorf("%w: %d cart items belong to another user", models.ErrForbidden, foreign)
		}

		inserted, err := insertOne(ctx, r.payments, p)
		if err != nil {
			return err
		}

		deleted, err := r.carts.DeleteMany(ctx, bson.M{
			"_id":   bson.M{"$in": p.CartIDs},
			"email": p.Email,
		})
		if err != nil {
			return fmt.Errorf("delete paid cart items: %w", err)
		}

		result = models.CheckoutResult{
			PaymentResult: inserted,
			DeleteResult:  models.DeleteResult{Acknowledged: true, DeletedCount: deleted.DeletedCount},
		}
		return nil
	})
	if err != nil {
		return models.CheckoutResult{}, err
	}
	return result, nil
}
