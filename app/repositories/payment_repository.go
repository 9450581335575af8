package repositories

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistrobuzz/bistro/app/models"
	"github.com/bistrobuzz/bistro/pkg/database"
)

// PaymentRepository handles the payments collection and the reports built
// on it.
type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(database.Payments)}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *models.Payment) (models.InsertResult, error) {
	return insertOne(ctx, r.col, p)
}

func (r *PaymentRepository) ByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return findAll[models.Payment](ctx, r.col, bson.D{{Key: "email", Value: email}})
}

func (r *PaymentRepository) EstimatedCount(ctx context.Context) (int64, error) {
	return estimatedCount(ctx, r.col)
}

// Prices returns the price of every payment, in storage order.
func (r *PaymentRepository) Prices(ctx context.Context) ([]decimal.Decimal, error) {
	defer observe(r.col, "find")()

	opts := options.Find().SetProjection(bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 0}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("payments: find prices: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]decimal.Decimal, 0)
	for cur.Next(ctx) {
		d, err := toDecimal(cur.Current.Lookup("price"))
		if err != nil {
			return nil, fmt.Errorf("payments: price: %w", err)
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("payments: cursor: %w", err)
	}
	return out, nil
}

// categoryPipeline joins each payment's menuItems onto the menu and sums the
// menu price per category. Prices are summed as Decimal128 so that rounding
// happens once, on the exact total.
func categoryPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.Menu},
			{Key: "localField", Value: "menuItems"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItemsData"},
		}}},
		{{Key: "$unwind", Value: "$menuItemsData"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItemsData.category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$toDecimal", Value: "$menuItemsData.price"}}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "count", Value: 1},
			{Key: "total", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}
}

type categoryRow struct {
	Category string               `bson:"category"`
	Count    int64                `bson:"count"`
	Total    primitive.Decimal128 `bson:"total"`
}

// CategorySums runs the category breakdown. Totals are not rounded.
func (r *PaymentRepository) CategorySums(ctx context.Context) ([]models.CategorySum, error) {
	defer observe(r.col, "aggregate")()

	cur, err := r.col.Aggregate(ctx, categoryPipeline())
	if err != nil {
		return nil, fmt.Errorf("payments: aggregate: %w", err)
	}
	var rows []categoryRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("payments: decode aggregate: %w", err)
	}

	out := make([]models.CategorySum, 0, len(rows))
	for _, row := range rows {
		total, err := decimal.NewFromString(row.Total.String())
		if err != nil {
			return nil, fmt.Errorf("payments: total for %q: %w", row.Category, err)
		}
		out = append(out, models.CategorySum{Category: row.Category, Count: row.Count, Total: total})
	}
	return out, nil
}

// toDecimal converts a stored numeric value. Missing or null prices count
// as zero.
func toDecimal(v bson.RawValue) (decimal.Decimal, error) {
	switch v.Type {
	case bsontype.Double:
		return decimal.NewFromFloat(v.Double()), nil
	case bsontype.Int32:
		return decimal.NewFromInt32(v.Int32()), nil
	case bsontype.Int64:
		return decimal.NewFromInt(v.Int64()), nil
	case bsontype.Decimal128:
		return decimal.NewFromString(v.Decimal128().String())
	case bsontype.Type(0), bsontype.Null:
		return decimal.Zero, nil
	default:
		return decimal.Zero, fmt.Errorf("unexpected type %s", v.Type)
	}
}
