package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	draftserrors "campreserv/internal/drafts/errors"
	"campreserv/pkg/config"
	"campreserv/pkg/model"
)

const (
	CollectionName = "BookingDrafts"
)

// DraftRepository is the persistence port for booking drafts. The service
// layer only depends on this interface, so tests run against an in-memory
// fake.
type DraftRepository interface {
	Upsert(ctx context.Context, draft *model.BookingDraft) error
	FindByKey(ctx context.Context, key string) (*model.BookingDraft, error)
	Delete(ctx context.Context, key string) error
}

type mongoDraftRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDraftRepository(cfg *config.Config) DraftRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDraftRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoDraftRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

// Upsert writes the full draft document keyed by its draft key. The same
// key is always rewritten in place; drafts have no history.
func (r *mongoDraftRepository) Upsert(ctx context.Context, draft *model.BookingDraft) error {
	if draft.Key == "" {
		return draftserrors.ErrInvalidKey
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	draft.SchemaVersion = model.DraftSchemaVersion
	draft.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	filter := bson.M{"_id": draft.Key}
	update := bson.M{"$set": draft}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert draft: %w", err)
	}

	return nil
}

func (r *mongoDraftRepository) FindByKey(ctx context.Context, key string) (*model.BookingDraft, error) {
	if key == "" {
		return nil, draftserrors.ErrInvalidKey
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var draft model.BookingDraft
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&draft)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, draftserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find draft: %w", err)
	}

	return &draft, nil
}

func (r *mongoDraftRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return draftserrors.ErrInvalidKey
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	if result.DeletedCount == 0 {
		return draftserrors.ErrNotFound
	}

	return nil
}
