package store

import (
	"context"
	"fmt"
	"time"

	"vitrine_back_end/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const opTimeout = 10 * time.Second

// CartStore persiste les lignes de panier dans la collection cart_items.
// Toutes les requêtes sont filtrées par ownerId : un utilisateur ne peut
// jamais toucher les lignes d'un autre.
type CartStore struct {
	coll *mongo.Collection
}

func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{coll: db.Collection("cart_items")}
}

func (s *CartStore) List(ctx context.Context, ownerID string) ([]models.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}

	var lines []models.CartLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *CartStore) Create(ctx context.Context, line models.CartLine) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := bson.M{
		"_id":       uuid.NewString(),
		"productId": line.ProductID,
		"title":     line.Title,
		"price":     line.Price,
		"image":     line.Image,
		"quantity":  line.Quantity,
		"ownerId":   line.OwnerID,
		"createdAt": time.Now(),
	}
	_, err := s.coll.InsertOne(ctx, doc)
	return err
}

func (s *CartStore) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"ownerId": ownerID, "productId": productID},
		bson.M{"$set": bson.M{"quantity": quantity}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// La précondition "la ligne existe" n'est plus vraie côté distant
		return fmt.Errorf("ligne %s introuvable pour l'utilisateur %s", productID, ownerID)
	}
	return nil
}

// Delete renvoie nil même si la ligne n'existe déjà plus :
// l'intention de suppression est satisfaite.
func (s *CartStore) Delete(ctx context.Context, ownerID, productID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := s.coll.DeleteOne(ctx, bson.M{"ownerId": ownerID, "productId": productID})
	return err
}
