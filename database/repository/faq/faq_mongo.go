package faqRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FAQRepository defines persistence operations for FAQ entries.
type FAQRepository interface {
	Create(faq *models.FAQ) error
	Update(faq *models.FAQ) error
	Delete(id string) error
	List(category string) ([]models.FAQ, error)
}

// MongoFAQRepo implements FAQRepository using MongoDB.
type MongoFAQRepo struct {
	coll *mongo.Collection
}

// NewMongoFAQRepo creates a new instance of FAQRepository using MongoDB.
func NewMongoFAQRepo() FAQRepository {
	coll := database.Collection("faqs")
	return &MongoFAQRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new FAQ document.
func (r *MongoFAQRepo) Create(faq *models.FAQ) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	faq.CreatedAt = now
	faq.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, faq)
	if err != nil {
		return fmt.Errorf("failed to create FAQ: %w", err)
	}
	return nil
}

// Update modifies an existing FAQ document.
func (r *MongoFAQRepo) Update(faq *models.FAQ) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	faq.UpdatedAt = time.Now()
	filter := bson.M{"id": faq.ID}
	update := bson.M{"$set": faq}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update FAQ with id %s: %w", faq.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("FAQ with id %s not found", faq.ID)
	}
	return nil
}

// Delete removes a FAQ document by its ID.
func (r *MongoFAQRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete FAQ with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("FAQ with id %s not found", id)
	}
	return nil
}

// List retrieves FAQ entries ordered for display, optionally filtered by category.
func (r *MongoFAQRepo) List(category string) ([]models.FAQ, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve FAQs: %w", err)
	}
	defer cursor.Close(ctx)

	var faqs []models.FAQ
	for cursor.Next(ctx) {
		var f models.FAQ
		if err := cursor.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode FAQ: %w", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, nil
}
