package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bistro-boss/internal/database"
	"bistro-boss/internal/models"
)

// StatsRepository runs the read-only dashboard queries.
type StatsRepository struct {
	users    *mongo.Collection
	menu     *mongo.Collection
	reviews  *mongo.Collection
	carts    *mongo.Collection
	payments *mongo.Collection
	bookings *mongo.Collection
}

func NewStatsRepository(db *database.MongoDB) *StatsRepository {
	return &StatsRepository{
		users:    db.Collection(database.CollectionUsers),
		menu:     db.Collection(database.CollectionMenu),
		reviews:  db.Collection(database.CollectionReviews),
		carts:    db.Collection(database.CollectionCarts),
		payments: db.Collection(database.CollectionPayments),
		bookings: db.Collection(database.CollectionBookings),
	}
}

func (r *StatsRepository) UserStats(ctx context.Context, email string) (*models.UserStats, error) {
	var (
		stats models.UserStats
		err   error
	)

	if stats.TotalShop, err = countByEmail(ctx, r.payments, email); err != nil {
		return nil, err
	}
	if stats.TotalMenus, err = r.sumInt(ctx, r.payments, orderedMenuItemsPipeline(email), "quantity"); err != nil {
		return nil, err
	}
	if stats.TotalOrder, err = countByEmail(ctx, r.carts, email); err != nil {
		return nil, err
	}
	if stats.TotalReviews, err = countByEmail(ctx, r.reviews, email); err != nil {
		return nil, err
	}
	if stats.TotalBookings, err = countByEmail(ctx, r.bookings, email); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *StatsRepository) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var (
		stats models.AdminStats
		err   error
	)

	if stats.Users, err = r.users.EstimatedDocumentCount(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.MenuItems, err = r.menu.EstimatedDocumentCount(ctx); err != nil {
		return nil, fmt.Errorf("count menu: %w", err)
	}
	if stats.Orders, err = r.payments.EstimatedDocumentCount(ctx); err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	cur, err := r.payments.Aggregate(ctx, revenuePipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate revenue: %w", err)
	}
	var rows []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode revenue: %w", err)
	}
	if len(rows) > 0 {
		stats.Revenue = rows[0].TotalRevenue
	}
	return &stats, nil
}

func (r *StatsRepository) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	cur, err := r.payments.Aggregate(ctx, categoryRevenuePipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate order stats: %w", err)
	}

	out := make([]models.CategoryStat, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode order stats: %w", err)
	}
	return out, nil
}

// sumInt runs a single-group pipeline and reads one integer field, defaulting to 0.
func (r *StatsRepository) sumInt(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, field string) (int64, error) {
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate %s: %w", coll.Name(), err)
	}
	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode %s aggregate: %w", coll.Name(), err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return toInt64(rows[0][field]), nil
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// orderedMenuItemsPipeline counts the menu items across an owner's payments.
func orderedMenuItemsPipeline(email string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"email": email}}},
		{{Key: "$unwind", Value: "$menuItemIds"}},
		{{Key: "$group", Value: bson.M{"_id": nil, "quantity": bson.M{"$sum": 1}}}},
	}
}

func revenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "totalRevenue": bson.M{"$sum": "$price"}}}},
	}
}

// categoryRevenuePipeline joins each ordered menu item id to the menu and totals
// quantity and revenue per category.
func categoryRevenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$menuItemIds"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.CollectionMenu,
			"localField":   "menuItemIds",
			"foreignField": "_id",
			"as":           "menuItems",
		}}},
		{{Key: "$unwind", Value: "$menuItems"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$menuItems.category",
			"quantity": bson.M{"$sum": 1},
			"revenue":  bson.M{"$sum": "$menuItems.price"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"category": "$_id",
			"quantity": "$quantity",
			"revenue":  "$revenue",
		}}},
	}
}
