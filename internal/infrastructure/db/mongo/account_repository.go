package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketplace/identity-service/internal/core/domain"
)

const accountCollection = "accounts"

// Index names double as the key for decoding duplicate-key write errors
// back into field-specific domain sentinels.
const (
	idxUniqueEmail    = "uniq_email"
	idxUniqueUsername = "uniq_username"
	idxUniqueShopName = "uniq_shop_name"
)

// AccountRepository persists accounts in MongoDB. The unique indexes it
// ensures at startup are the authoritative uniqueness guard; FindConflicts
// only exists for friendlier error messages.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

type accountDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	PasswordDigest string             `bson:"password_digest"`
	Role           string             `bson:"role"`
	ShopName       *string            `bson:"shop_name,omitempty"`
	CreatedAt      int64              `bson:"created_at"`
}

// EnsureIndexes creates the unique constraints the core relies on. The
// shop-name index is partial so accounts without a shop never collide.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(idxUniqueEmail).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName(idxUniqueUsername).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "shop_name", Value: 1}},
			Options: options.Index().
				SetName(idxUniqueShopName).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"shop_name": bson.M{"$exists": true}}),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("ensure account indexes: %w", err)
	}
	return nil
}

// FindConflicts runs the advisory uniqueness pre-check. The shop-name
// predicate is added only when shopName is non-nil.
func (r *AccountRepository) FindConflicts(ctx context.Context, email, username string, shopName *string) ([]domain.Conflict, error) {
	or := bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}
	if shopName != nil {
		or = append(or, bson.M{"shop_name": *shopName})
	}

	proj := options.Find().SetProjection(bson.M{"email": 1, "username": 1, "shop_name": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"$or": or}, proj)
	if err != nil {
		return nil, fmt.Errorf("find conflicts: %w", err)
	}
	defer cursor.Close(ctx)

	var conflicts []domain.Conflict
	for cursor.Next(ctx) {
		var doc accountDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode conflict row: %w", err)
		}
		c := domain.Conflict{Email: doc.Email, Username: doc.Username}
		if doc.ShopName != nil {
			c.ShopName = *doc.ShopName
		}
		conflicts = append(conflicts, c)
	}
	return conflicts, cursor.Err()
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	doc := accountDoc{
		Username:       account.Username,
		Email:          account.Email,
		PasswordDigest: account.PasswordDigest,
		Role:           account.Role,
		CreatedAt:      account.CreatedAt.Unix(),
	}
	if account.Role == domain.RoleSeller {
		shop := account.ShopName
		doc.ShopName = &shop
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateFieldError(err)
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// duplicateFieldError maps a duplicate-key write error to the sentinel for
// the violated index. Unrecognised index names fall back to the generic
// duplicate-account sentinel.
func duplicateFieldError(err error) error {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, w := range we.WriteErrors {
			switch {
			case strings.Contains(w.Message, idxUniqueEmail):
				return domain.ErrDuplicateEmail
			case strings.Contains(w.Message, idxUniqueUsername):
				return domain.ErrDuplicateUsername
			case strings.Contains(w.Message, idxUniqueShopName):
				return domain.ErrDuplicateShopName
			}
		}
	}
	return domain.ErrDuplicateAccount
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) ListAll(ctx context.Context) ([]domain.AccountSummary, error) {
	return r.list(ctx, bson.M{})
}

func (r *AccountRepository) ListByRole(ctx context.Context, role string) ([]domain.AccountSummary, error) {
	return r.list(ctx, bson.M{"role": role})
}

// list returns summaries only; the password digest is excluded at the query
// projection level, not just at serialisation time.
func (r *AccountRepository) list(ctx context.Context, filter bson.M) ([]domain.AccountSummary, error) {
	proj := options.Find().SetProjection(bson.M{"username": 1, "email": 1, "role": 1})
	cursor, err := r.coll.Find(ctx, filter, proj)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []domain.AccountSummary{}
	for cursor.Next(ctx) {
		var doc accountDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode account row: %w", err)
		}
		summaries = append(summaries, domain.AccountSummary{
			ID:       doc.ID.Hex(),
			Username: doc.Username,
			Email:    doc.Email,
			Role:     doc.Role,
		})
	}
	return summaries, cursor.Err()
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	return r.deleteOne(ctx, id, bson.M{})
}

func (r *AccountRepository) DeleteByRole(ctx context.Context, id, role string) error {
	return r.deleteOne(ctx, id, bson.M{"role": role})
}

func (r *AccountRepository) deleteOne(ctx context.Context, id string, extra bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	filter := bson.M{"_id": oid}
	for k, v := range extra {
		filter[k] = v
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (d *accountDoc) toDomain() *domain.Account {
	account := &domain.Account{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		Email:          d.Email,
		PasswordDigest: d.PasswordDigest,
		Role:           d.Role,
		CreatedAt:      unixToTime(d.CreatedAt),
	}
	if d.ShopName != nil {
		account.ShopName = *d.ShopName
	}
	return account
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
