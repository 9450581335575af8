package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuItem is a dish on the menu.
type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name" validate:"required,max=200"`
	Recipe   string             `bson:"recipe,omitempty" json:"recipe,omitempty"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
	Category string             `bson:"category" json:"category" validate:"required"`
	Price    float64            `bson:"price" json:"price" validate:"gte=0"`
}

// Review is a customer testimonial.
type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name    string             `bson:"name" json:"name"`
	Details string             `bson:"details" json:"details"`
	Rating  float64            `bson:"rating" json:"rating"`
}
