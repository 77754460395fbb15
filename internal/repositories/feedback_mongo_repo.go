package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feedbackflow/internal/models/db_models"
	"feedbackflow/pkg/utils"
)

// CollectionProvider yields the feedback collection, connecting lazily if needed.
// *infra.MongoConnector satisfies it.
type CollectionProvider interface {
	Collection(ctx context.Context) (*mongo.Collection, error)
}

// FeedbackMongoRepository stores one document per feedback entry. The id is
// count+1, so two concurrent Appends can still collide.
type FeedbackMongoRepository struct {
	conn CollectionProvider
}

func NewFeedbackMongoRepository(conn CollectionProvider) *FeedbackMongoRepository {
	return &FeedbackMongoRepository{conn: conn}
}

func (r *FeedbackMongoRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.conn.Collection(ctx)
	if err != nil {
		return 0, err
	}

	count, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, utils.NewStorageError("count", err)
	}
	return count, nil
}

func (r *FeedbackMongoRepository) Append(ctx context.Context, feedback db_models.NewFeedback) (*db_models.Feedback, error) {
	coll, err := r.conn.Collection(ctx)
	if err != nil {
		return nil, err
	}

	count, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, utils.NewStorageError("count", err)
	}

	record := &db_models.Feedback{
		ID:        count + 1,
		Name:      feedback.Name,
		Email:     feedback.Email,
		Message:   feedback.Message,
		Timestamp: utils.NowISO(),
	}

	// The server adds _id; it is never read back.
	if _, err := coll.InsertOne(ctx, record); err != nil {
		return nil, utils.NewStorageError("append", err)
	}
	return record, nil
}

func (r *FeedbackMongoRepository) ListAll(ctx context.Context) ([]db_models.Feedback, error) {
	coll, err := r.conn.Collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetProjection(bson.D{{Key: "_id", Value: 0}}).
		SetSort(bson.D{{Key: "id", Value: 1}})

	cursor, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, utils.NewStorageError("list", err)
	}

	feedbacks := []db_models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, utils.NewStorageError("list", err)
	}
	if feedbacks == nil {
		feedbacks = []db_models.Feedback{}
	}
	return feedbacks, nil
}
