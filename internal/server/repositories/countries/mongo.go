package countries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/proyection/proyection-api/internal/common"
	"github.com/proyection/proyection-api/internal/server/models"
)

const collectionName = "countries"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "iso_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("creating country indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) ListActive(ctx context.Context) ([]models.Country, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "display_order", Value: 1},
		{Key: "name", Value: 1},
	})

	cur, err := r.coll.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying countries: %w", err)
	}
	defer cur.Close(ctx)

	countries := []models.Country{}
	if err := cur.All(ctx, &countries); err != nil {
		return nil, fmt.Errorf("decoding countries: %w", err)
	}
	return countries, nil
}

func (r *MongoRepository) GetByISOCode(ctx context.Context, isoCode string) (*models.Country, error) {
	country := &models.Country{}
	filter := bson.M{"iso_code": strings.ToUpper(isoCode), "is_active": true}
	if err := r.coll.FindOne(ctx, filter).Decode(country); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("querying country: %w", err)
	}
	return country, nil
}

func (r *MongoRepository) Upsert(ctx context.Context, country *models.Country) error {
	now := time.Now()
	country.UpdatedAt = now

	// _id and created_at are set only on insert so a re-run never tries to
	// rewrite the immutable _id of an existing document.
	raw, err := bson.Marshal(country)
	if err != nil {
		return fmt.Errorf("encoding country: %w", err)
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("encoding country: %w", err)
	}
	delete(doc, "_id")
	delete(doc, "created_at")

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"iso_code": country.ISOCode},
		bson.M{
			"$set":         doc,
			"$setOnInsert": bson.M{"_id": country.ID, "created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upserting country: %w", err)
	}
	return nil
}
