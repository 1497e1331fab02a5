package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

const collectionShipments = "shipments"

// SnapshotRepository reads tracking snapshots from the shipments collection.
// It is the authoritative source the watch manager falls back from when a
// cached copy is unavailable.
type SnapshotRepository struct {
	col *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{col: db.Collection(collectionShipments)}
}

// Fetch retrieves the tracking snapshot for a shipment by id.
func (r *SnapshotRepository) Fetch(ctx context.Context, shipmentID string) (*domain.TrackingSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var snap domain.TrackingSnapshot
	err := r.col.FindOne(ctx, bson.M{"_id": shipmentID}).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return &snap, nil
}

// FindByTrackingNumber retrieves a snapshot by its public tracking number.
func (r *SnapshotRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.TrackingSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var snap domain.TrackingSnapshot
	err := r.col.FindOne(ctx, bson.M{"tracking_number": trackingNumber}).Decode(&snap)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return &snap, nil
}

// EnsureIndexes creates necessary indexes on the shipments collection.
func (r *SnapshotRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tracking_number", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
