package bankaccounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/proyection/proyection-api/internal/common"
	"github.com/proyection/proyection-api/internal/server/models"
)

const collectionName = "bank_accounts"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collectionName)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_deleted", Value: 1}}},
		{Keys: bson.D{{Key: "country_id", Value: 1}, {Key: "bank_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("creating bank account indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, account *models.BankAccount) (*models.BankAccount, error) {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	account.IsDeleted = false
	account.DeletedAt = nil

	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		return nil, fmt.Errorf("inserting bank account: %w", err)
	}
	return account, nil
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]models.BankAccount, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, excludeDeleted(bson.M{"user_id": userID}), opts)
	if err != nil {
		return nil, fmt.Errorf("querying bank accounts: %w", err)
	}
	defer cur.Close(ctx)

	accounts := []models.BankAccount{}
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("decoding bank accounts: %w", err)
	}
	return accounts, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id, userID string) (*models.BankAccount, error) {
	account := &models.BankAccount{}
	filter := excludeDeleted(bson.M{"_id": id, "user_id": userID})
	if err := r.coll.FindOne(ctx, filter).Decode(account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("querying bank account: %w", err)
	}
	return account, nil
}

func (r *MongoRepository) Update(ctx context.Context, account *models.BankAccount) error {
	set := touchUpdatedAt(bson.M{
		"name":           account.Name,
		"description":    account.Description,
		"current_amount": account.CurrentAmount,
		"currency":       account.Currency,
		"account_number": account.AccountNumber,
		"country_id":     account.CountryID,
		"bank_id":        account.BankID,
	})

	res, err := r.coll.UpdateOne(ctx,
		excludeDeleted(bson.M{"_id": account.ID, "user_id": account.UserID}),
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("updating bank account: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SetActive(ctx context.Context, id, userID string, active bool) error {
	res, err := r.coll.UpdateOne(ctx,
		excludeDeleted(bson.M{"_id": id, "user_id": userID}),
		bson.M{"$set": touchUpdatedAt(bson.M{"is_active": active})},
	)
	if err != nil {
		return fmt.Errorf("updating bank account active flag: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SoftDelete(ctx context.Context, id, userID string) error {
	now := time.Now()
	res, err := r.coll.UpdateOne(ctx,
		excludeDeleted(bson.M{"_id": id, "user_id": userID}),
		bson.M{"$set": touchUpdatedAt(bson.M{"is_deleted": true, "deleted_at": now})},
	)
	if err != nil {
		return fmt.Errorf("soft-deleting bank account: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Restore(ctx context.Context, id, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID, "is_deleted": true},
		bson.M{
			"$set":   touchUpdatedAt(bson.M{"is_deleted": false}),
			"$unset": bson.M{"deleted_at": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("restoring bank account: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// excludeDeleted adds the soft-delete guard to a query filter. Kept as an
// explicit helper so every query states its deletion semantics.
func excludeDeleted(filter bson.M) bson.M {
	filter["is_deleted"] = false
	return filter
}

// touchUpdatedAt stamps updated_at on a $set document.
func touchUpdatedAt(set bson.M) bson.M {
	set["updated_at"] = time.Now()
	return set
}
