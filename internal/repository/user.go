package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KosalaEhub/ticket-book/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence in the users collection.
// Documents are keyed by normalized email.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new UserRepository over the given collection.
func NewUserRepository(col *mongo.Collection) *UserRepository {
	return &UserRepository{col: col}
}

// EnsureIndexes creates the unique index on email that backs the
// one-record-per-email invariant.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByEmail retrieves the user document for a normalized email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Insert stores a new user document.
func (r *UserRepository) Insert(ctx context.Context, user *model.User) error {
	_, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

// UpdateProfile replaces the mutable contact-info fields of the document
// matching email. Email, password hash and photo are left untouched.
func (r *UserRepository) UpdateProfile(ctx context.Context, email string, p model.Profile) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"fname":   p.FirstName,
			"lname":   p.LastName,
			"phone":   p.Phone,
			"country": p.Country,
			"city":    p.City,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the document matching email.
func (r *UserRepository) Delete(ctx context.Context, email string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
