package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"personal-diary/models"
)

// PostRepository is the MongoDB-backed PostStore.
type PostRepository struct {
	col *mongo.Collection
}

var _ PostStore = (*PostRepository)(nil)

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

// Create inserts a new post document with server-assigned id and timestamps.
func (r *PostRepository) Create(ctx context.Context, p models.Post) (models.Post, error) {
	now := time.Now()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// GetByID returns a post by its ObjectID hex.
func (r *PostRepository) GetByID(ctx context.Context, id string) (models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Post{}, ErrNotFound
	}
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return p, nil
}

// List returns every post, newest diary day first.
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	findOpts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByDate returns posts for the local calendar day of `day`,
// most recently written first.
func (r *PostRepository) ListByDate(ctx context.Context, day time.Time) ([]models.Post, error) {
	start := models.DayOf(day)
	end := start.Add(24 * time.Hour)

	filter := bson.M{"date": bson.M{"$gte": start, "$lt": end}}
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update applies only the fields present in the patch. An empty patch is a
// read: the stored document comes back untouched, updated_at included.
func (r *PostRepository) Update(ctx context.Context, id string, patch models.PostPatch) (models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Post{}, ErrNotFound
	}
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set := bson.M{"updated_at": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Date != nil {
		set["date"] = models.DayOf(*patch.Date)
	}
	if patch.Mood != nil {
		set["mood"] = *patch.Mood
	}
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	var p models.Post
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return p, nil
}

// Delete removes a post by id. Deleting an absent post is ErrNotFound,
// so a second delete of the same id fails cleanly.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
