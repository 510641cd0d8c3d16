package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMongoRepo_Integration(t *testing.T) {
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set; skipping mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	runStoreContract(t, func(t *testing.T) Store {
		col := client.Database("menu_test").Collection(fmt.Sprintf("menu_%d", time.Now().UnixNano()))
		t.Cleanup(func() { _ = col.Drop(context.Background()) })
		return NewMongoRepo(col)
	})
}

func TestMongoRepo_MalformedIDs(t *testing.T) {
	// ids that are not ObjectID hex never reach the driver
	r := NewMongoRepo(nil)
	require.ErrorIs(t, r.Update(context.Background(), "not-hex", menu.AvailabilityPatch(true)), menu.ErrNotFound)
	require.NoError(t, r.Delete(context.Background(), "not-hex"))
}
