package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOwnedLines(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	filter := ownedLines("ann@example.com", a, b)

	require.Len(t, filter, 2)
	assert.Equal(t, "_id", filter[0].Key)
	assert.Equal(t, bson.D{{Key: "$in", Value: []primitive.ObjectID{a, b}}}, filter[0].Value)
	assert.Equal(t, bson.E{Key: "email", Value: "ann@example.com"}, filter[1])
}
