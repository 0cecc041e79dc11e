package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/KosalaEhub/ticket-book/internal/model"
)

// ContactRepository appends contact-form submissions to the contact
// collection. Messages are unkeyed and never updated or deleted.
type ContactRepository struct {
	col *mongo.Collection
}

// NewContactRepository creates a new ContactRepository over the given collection.
func NewContactRepository(col *mongo.Collection) *ContactRepository {
	return &ContactRepository{col: col}
}

// Insert stores one contact message.
func (r *ContactRepository) Insert(ctx context.Context, msg *model.ContactMessage) error {
	_, err := r.col.InsertOne(ctx, msg)
	return err
}
