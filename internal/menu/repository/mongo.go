package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/beanboard/menu-service/internal/menu"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepo stores menu items as documents in one collection.
// The document _id is a generated ObjectID; its hex form is the item id.
type MongoRepo struct {
	col *mongo.Collection
}

// mongoItem is the stored shape of a menu item.
type mongoItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"menuName"`
	Price     float64            `bson:"menuPrice"`
	Category  string             `bson:"menuCategory"`
	Available bool               `bson:"menuAvailable"`
}

func (d mongoItem) toItem() menu.MenuItem {
	return menu.MenuItem{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Price:     d.Price,
		Category:  d.Category,
		Available: d.Available,
	}
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Add(ctx context.Context, item menu.MenuItem) (string, error) {
	doc := mongoItem{
		Name:      item.Name,
		Price:     item.Price,
		Category:  item.Category,
		Available: item.Available,
	}
	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert menu item: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert menu item: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (m *MongoRepo) List(ctx context.Context) ([]menu.MenuItem, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find menu items: %w", err)
	}
	defer cur.Close(ctx)
	out := []menu.MenuItem{}
	for cur.Next(ctx) {
		var d mongoItem
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode menu item: %w", err)
		}
		out = append(out, d.toItem())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}
	return out, nil
}

func (m *MongoRepo) Update(ctx context.Context, id string, p menu.Patch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// an id that cannot be an ObjectID cannot exist in the collection
		return menu.ErrNotFound
	}
	set := bson.M{}
	for k, v := range p.Fields() {
		set[k] = v
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if res.MatchedCount == 0 {
		return menu.ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := m.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	client := m.col.Database().Client()
	if client == nil {
		return errors.New("mongo client not initialised")
	}
	return client.Ping(ctx, readpref.Primary())
}
