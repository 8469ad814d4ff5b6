// File: database/repository/booking.go
package repository

import (
	"context"
	"fmt"
	"time"

	"tutorly/database"
	"tutorly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingRepository defines data access for submitted monthly plans.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.MonthlyClassBooking) error
	GetByID(ctx context.Context, id string) (*models.MonthlyClassBooking, error)
	UpdateStatus(ctx context.Context, id, status, invoiceID string) error
	ListByStudent(ctx context.Context, studentID string) ([]models.MonthlyClassBooking, error)
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database("tutorly").Collection("monthly_bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new monthly booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.MonthlyClassBooking) error {
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a monthly booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.MonthlyClassBooking, error) {
	var booking models.MonthlyClassBooking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// UpdateStatus moves a booking to a new status, optionally attaching the
// invoice that settled it.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status, invoiceID string) error {
	set := bson.M{"status": status, "updated_at": time.Now()}
	if invoiceID != "" {
		set["invoice_id"] = invoiceID
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// ListByStudent returns a student's monthly bookings, newest first.
func (r *MongoBookingRepo) ListByStudent(ctx context.Context, studentID string) ([]models.MonthlyClassBooking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for student %s: %w", studentID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.MonthlyClassBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
