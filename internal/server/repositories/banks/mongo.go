package banks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/proyection/proyection-api/internal/server/models"
)

const collectionName = "banks"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "country_code", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "is_popular", Value: 1}, {Key: "is_active", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("creating bank indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter) ([]models.Bank, int64, error) {
	filter = filter.Normalize()

	query := bson.M{"is_active": true}
	if filter.CountryCode != "" {
		query["country_code"] = strings.ToUpper(filter.CountryCode)
	}
	if filter.BankingType != "" {
		query["banking_type"] = filter.BankingType
	}
	if filter.Popular != nil {
		query["is_popular"] = *filter.Popular
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("counting banks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "display_order", Value: 1}, {Key: "name", Value: 1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("querying banks: %w", err)
	}
	defer cur.Close(ctx)

	banks := []models.Bank{}
	if err := cur.All(ctx, &banks); err != nil {
		return nil, 0, fmt.Errorf("decoding banks: %w", err)
	}
	return banks, total, nil
}

func (r *MongoRepository) ListByCountry(ctx context.Context, countryCode string) ([]models.Bank, error) {
	query := bson.M{
		"country_code": strings.ToUpper(countryCode),
		"is_active":    true,
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "display_order", Value: 1},
		{Key: "name", Value: 1},
	})

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("querying banks by country: %w", err)
	}
	defer cur.Close(ctx)

	banks := []models.Bank{}
	if err := cur.All(ctx, &banks); err != nil {
		return nil, fmt.Errorf("decoding banks: %w", err)
	}
	return banks, nil
}

func (r *MongoRepository) ListPopular(ctx context.Context) ([]models.Bank, error) {
	query := bson.M{"is_popular": true, "is_active": true}
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("querying popular banks: %w", err)
	}
	defer cur.Close(ctx)

	banks := []models.Bank{}
	if err := cur.All(ctx, &banks); err != nil {
		return nil, fmt.Errorf("decoding banks: %w", err)
	}
	return banks, nil
}

func (r *MongoRepository) Upsert(ctx context.Context, bank *models.Bank) error {
	now := time.Now()
	bank.UpdatedAt = now

	// _id and created_at are set only on insert so a re-run never tries to
	// rewrite the immutable _id of an existing document.
	raw, err := bson.Marshal(bank)
	if err != nil {
		return fmt.Errorf("encoding bank: %w", err)
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("encoding bank: %w", err)
	}
	delete(doc, "_id")
	delete(doc, "created_at")

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"code": bank.Code},
		bson.M{
			"$set":         doc,
			"$setOnInsert": bson.M{"_id": bank.ID, "created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upserting bank: %w", err)
	}
	return nil
}
