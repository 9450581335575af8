package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func rawPrice(t *testing.T, v interface{}) bson.RawValue {
	t.Helper()
	raw, err := bson.Marshal(bson.D{{Key: "price", Value: v}})
	require.NoError(t, err)
	return bson.Raw(raw).Lookup("price")
}

func TestToDecimal(t *testing.T) {
	d128, err := primitive.ParseDecimal128("5.005")
	require.NoError(t, err)

	cases := []struct {
		name string
		in   bson.RawValue
		want string
	}{
		{"double", rawPrice(t, 15.5), "15.5"},
		{"int32", rawPrice(t, int32(10)), "10"},
		{"int64", rawPrice(t, int64(12)), "12"},
		{"decimal128", rawPrice(t, d128), "5.005"},
		{"null", rawPrice(t, nil), "0"},
		{"missing", bson.RawValue{}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toDecimal(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}

	_, err = toDecimal(rawPrice(t, "ten"))
	assert.Error(t, err)
}

func TestCategoryPipeline(t *testing.T) {
	p := categoryPipeline()
	require.Len(t, p, 5)

	stages := make([]string, len(p))
	for i, stage := range p {
		stages[i] = stage[0].Key
	}
	assert.Equal(t, []string{"$lookup", "$unwind", "$group", "$project", "$sort"}, stages)

	lookup := p[0][0].Value.(bson.D).Map()
	assert.Equal(t, "menu", lookup["from"])
	assert.Equal(t, "menuItems", lookup["localField"])
	assert.Equal(t, "_id", lookup["foreignField"])

	group := p[2][0].Value.(bson.D).Map()
	assert.Equal(t, "$menuItemsData.category", group["_id"])
}

func TestHexID(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id.Hex(), hexID(id))
	assert.Equal(t, "abc", hexID("abc"))
	assert.Equal(t, "7", hexID(7))
}
