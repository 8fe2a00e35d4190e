package appointmentRepo

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

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

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
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "startAt", Value: -1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(appointment *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, appointment)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appointment models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appointment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appointment, nil
}

// ListByPatient retrieves a patient's appointments, newest first.
func (r *MongoAppointmentRepo) ListByPatient(patientID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startAt", Value: -1}})
	return r.list(bson.M{"patientId": patientID}, opts)
}

// ListByDoctor retrieves a doctor's appointments, optionally filtered to one date.
func (r *MongoAppointmentRepo) ListByDoctor(doctorID string, date string) ([]models.Appointment, error) {
	filter := bson.M{"doctorId": doctorID}
	if date != "" {
		filter["date"] = date
	}
	opts := options.Find().SetSort(bson.D{{Key: "startAt", Value: 1}})
	return r.list(filter, opts)
}

func (r *MongoAppointmentRepo) list(filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

// UpdateStatus sets the status of an appointment.
func (r *MongoAppointmentRepo) UpdateStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

// HasConflict reports whether the doctor already has a confirmed appointment
// at the given instant.
func (r *MongoAppointmentRepo) HasConflict(doctorID string, startAt time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"doctorId": doctorID,
		"startAt":  startAt,
		"status":   models.AppointmentConfirmed,
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check appointment conflicts: %w", err)
	}
	return count > 0, nil
}
