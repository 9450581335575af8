package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrobuzz/bistro/pkg/rbac"
)

// User is a customer or staff member, keyed by email.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	PhotoURL string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role     string             `bson:"role,omitempty" json:"role,omitempty"`
}

// AccessRole returns the stored role as the enum.
func (u User) AccessRole() rbac.Role {
	return rbac.ParseRole(u.Role)
}
