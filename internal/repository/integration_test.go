package repository

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bistro-boss/internal/config"
	"bistro-boss/internal/database"
	"bistro-boss/internal/logger"
	"bistro-boss/internal/models"
)

// testMongo connects to BISTRO_TEST_MONGO_URI using a throwaway database.
func testMongo(t *testing.T) *database.MongoDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}
	uri := os.Getenv("BISTRO_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("skipping mongo integration test: BISTRO_TEST_MONGO_URI not set")
	}

	cfg := &config.Config{Mongo: config.MongoConfig{
		URI:            uri,
		Database:       "bistro_test_" + primitive.NewObjectID().Hex(),
		ConnectRetries: 1,
	}}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.NewMongo(ctx, cfg, logger.NewWithWriter("test", io.Discard, slog.LevelError))
	require.NoError(t, err)
	require.NoError(t, db.EnsureIndexes(ctx))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.DB.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}

func TestIntegration_UserEmailIsUnique(t *testing.T) {
	db := testMongo(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Insert(ctx, &models.User{Email: "dup@bistro.io", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = repo.Insert(ctx, &models.User{Email: "dup@bistro.io", Role: models.RoleUser})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestIntegration_CheckoutAndStats(t *testing.T) {
	db := testMongo(t)
	ctx := context.Background()
	menu := NewMenuRepository(db)
	carts := NewCartRepository(db)
	payments := NewPaymentRepository(db)
	stats := NewStatsRepository(db)

	empty, err := stats.AdminStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Revenue)

	soup := &models.MenuItem{Name: "Soup", Category: "soup", Price: 6}
	res, err := menu.Insert(ctx, soup)
	require.NoError(t, err)
	soupID := res.InsertedID.(primitive.ObjectID)

	var cartIDs []primitive.ObjectID
	for i := 0; i < 3; i++ {
		r, err := carts.Insert(ctx, &models.CartItem{MenuID: soupID.Hex(), Email: "guest@bistro.io", Price: 6})
		require.NoError(t, err)
		cartIDs = append(cartIDs, r.InsertedID.(primitive.ObjectID))
	}

	out, err := payments.Checkout(ctx, &models.Payment{
		Email:         "guest@bistro.io",
		Price:         18,
		TransactionID: "pi_it",
		Date:          time.Now().UTC(),
		Status:        models.PaymentStatusPending,
		CartIDs:       cartIDs,
		MenuItemIDs:   []primitive.ObjectID{soupID, soupID, soupID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.DeleteResult.DeletedCount)

	left, err := carts.ListByEmail(ctx, "guest@bistro.io")
	require.NoError(t, err)
	assert.Empty(t, left)

	history, err := payments.ListByEmail(ctx, "guest@bistro.io")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	admin, err := stats.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 18.0, admin.Revenue)

	orders, err := stats.OrderStats(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "soup", orders[0].Category)
	assert.Equal(t, int64(3), orders[0].Quantity)

	user, err := stats.UserStats(ctx, "guest@bistro.io")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.TotalShop)
	assert.Equal(t, int64(3), user.TotalMenus)
}

func TestIntegration_CheckoutRejectsForeignCart(t *testing.T) {
	db := testMongo(t)
	ctx := context.Background()
	carts := NewCartRepository(db)
	payments := NewPaymentRepository(db)

	r, err := carts.Insert(ctx, &models.CartItem{MenuID: "x", Email: "victim@bistro.io", Price: 3})
	require.NoError(t, err)

	_, err = payments.Checkout(ctx, &models.Payment{
		Email:   "guest@bistro.io",
		Price:   3,
		CartIDs: []primitive.ObjectID{r.InsertedID.(primitive.ObjectID)},
	})
	assert.ErrorIs(t, err, models.ErrForbidden)

	left, err := carts.ListByEmail(ctx, "victim@bistro.io")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
