package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/database"
	"github.com/bistrobuzz/bistro/pkg/rbac"
)

// UserRepository handles the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(database.Users)}
}

func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.col, bson.D{})
}

// FindByEmail returns nil and no error when no user has that email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observe(r.col, "find_one")()

	var u models.User
	err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *models.User) (models.InsertResult, error) {
	return insertOne(ctx, r.col, u)
}

// SetRole updates the role of the user with the given id.
func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role rbac.Role) (models.UpdateResult, error) {
	return r.setRole(ctx, bson.D{{Key: "_id", Value: id}}, role)
}

// SetRoleByEmail is SetRole keyed by email.
func (r *UserRepository) SetRoleByEmail(ctx context.Context, email string, role rbac.Role) (models.UpdateResult, error) {
	return r.setRole(ctx, bson.D{{Key: "email", Value: email}}, role)
}

func (r *UserRepository) setRole(ctx context.Context, filter bson.D, role rbac.Role) (models.UpdateResult, error) {
	defer observe(r.col, "update")()

	update := bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: role.String()}}}}
	if role == rbac.Guest {
		update = bson.D{{Key: "$unset", Value: bson.D{{Key: "role", Value: ""}}}}
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("users: set role: %w", err)
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func (r *UserRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return estimatedCount(ctx, r.col)
}
