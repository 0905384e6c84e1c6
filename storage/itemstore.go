package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ramonsanvesti/vesti-founder-sub001/models"
	"github.com/ramonsanvesti/vesti-founder-sub001/utils"
)

const ItemsCollection = "wardrobe_items"

// ItemStore persists confirmed wardrobe items.
type ItemStore struct {
	col *mongo.Collection
}

func NewItemStore() *ItemStore {
	return &ItemStore{col: utils.GetCollection(DatabaseName, ItemsCollection)}
}

func (s *ItemStore) Insert(ctx context.Context, item *models.WardrobeItem) error {
	item.CreatedAt = time.Now().UTC()

	res, err := s.col.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to insert wardrobe item: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}
