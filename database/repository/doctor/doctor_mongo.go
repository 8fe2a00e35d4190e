package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	coll := database.Collection("doctors")
	repo := &MongoDoctorRepo{coll: coll}

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
func (r *MongoDoctorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "specialty", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByIDWithProjection retrieves a doctor by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoDoctorRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor with id %s: %w", id, err)
	}
	return &doctor, nil
}

// GetByEmailWithProjection retrieves a doctor by email using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoDoctorRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor with email %s: %w", email, err)
	}
	return &doctor, nil
}

// ListByStatus retrieves doctors filtered by vetting status.
func (r *MongoDoctorRepo) ListByStatus(status string, projection bson.M) ([]models.Doctor, error) {
	return r.list(bson.M{"status": status}, projection)
}

// ListApproved retrieves all vetted doctors visible to patients.
func (r *MongoDoctorRepo) ListApproved(projection bson.M) ([]models.Doctor, error) {
	return r.list(bson.M{"status": models.DoctorStatusApproved}, projection)
}

func (r *MongoDoctorRepo) list(filter bson.M, projection bson.M) ([]models.Doctor, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find()
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	for cursor.Next(ctx) {
		var d models.Doctor
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	return doctors, nil
}

// Create inserts a new doctor document.
func (r *MongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, doctor)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// Update modifies an existing doctor document.
func (r *MongoDoctorRepo) Update(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doctor.UpdatedAt = time.Now()
	filter := bson.M{"id": doctor.ID}
	update := bson.M{"$set": doctor}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", doctor.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", doctor.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial update to a doctor document.
func (r *MongoDoctorRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": updateDoc}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", id)
	}
	return nil
}

// Delete removes a doctor document by its ID.
func (r *MongoDoctorRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete doctor with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", id)
	}
	return nil
}

// GetAvailability retrieves only the availability config for a doctor.
func (r *MongoDoctorRepo) GetAvailability(doctorID string) (*models.AvailabilityConfig, error) {
	doctor, err := r.GetByIDWithProjection(doctorID, bson.M{"availability": 1})
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, nil
	}
	return &doctor.Availability, nil
}

// SetAvailability replaces the availability config for a doctor.
func (r *MongoDoctorRepo) SetAvailability(doctorID string, cfg models.AvailabilityConfig) error {
	cfg.UpdatedAt = time.Now()
	return r.UpdateSetDocument(doctorID, bson.M{
		"availability": cfg,
		"updatedAt":    time.Now(),
	})
}
