package patientRepo

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

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo creates a new instance of PatientRepository using MongoDB.
func NewMongoPatientRepo() PatientRepository {
	coll := database.Collection("patients")
	repo := &MongoPatientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoPatientRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByIDWithProjection retrieves a patient by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoPatientRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Patient, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var patient models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&patient); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch patient with id %s: %w", id, err)
	}
	return &patient, nil
}

// GetByEmailWithProjection retrieves a patient by email using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoPatientRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Patient, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var patient models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&patient); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch patient with email %s: %w", email, err)
	}
	return &patient, nil
}

// GetAllWithProjection retrieves all patients with an optional projection.
func (r *MongoPatientRepo) GetAllWithProjection(projection bson.M) ([]models.Patient, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find()
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	for cursor.Next(ctx) {
		var p models.Patient
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, nil
}

// Create inserts a new patient document.
func (r *MongoPatientRepo) Create(patient *models.Patient) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, patient)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// Update modifies an existing patient document.
func (r *MongoPatientRepo) Update(patient *models.Patient) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	patient.UpdatedAt = time.Now()
	filter := bson.M{"id": patient.ID}
	update := bson.M{"$set": patient}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update patient with id %s: %w", patient.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("patient with id %s not found", patient.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial update to a patient document.
func (r *MongoPatientRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	// Wrap in $set to comply with MongoDB update syntax
	update := bson.M{"$set": updateDoc}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update patient with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("patient with id %s not found", id)
	}
	return nil
}

// Delete removes a patient document by its ID.
func (r *MongoPatientRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete patient with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("patient with id %s not found", id)
	}
	return nil
}
