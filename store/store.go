package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pocket-lite/models"
)

// PageSize is the fixed number of entries per /data page.
const PageSize = 20

const opTimeout = 30 * time.Second

// Store runs entry queries against the Mongo collection.
type Store struct {
	entries *mongo.Collection
}

func New(entries *mongo.Collection) *Store {
	return &Store{entries: entries}
}

// InsertNew persists the entries whose ids are not already stored and
// reports how many were written. Existence is checked with a single $in
// query, so concurrent overlapping ingests can both observe "absent" and
// insert the same id; that race is accepted rather than locked against.
func (s *Store) InsertNew(ctx context.Context, batch []models.Entry) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ids := make([]string, len(batch))
	for i, e := range batch {
		ids[i] = e.ID
	}

	cursor, err := s.entries.Find(ctx, bson.M{"id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"id": 1}))
	if err != nil {
		return 0, fmt.Errorf("querying existing ids: %w", err)
	}
	defer cursor.Close(ctx)

	existing := make(map[string]struct{})
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return 0, fmt.Errorf("decoding existing id: %w", err)
		}
		existing[doc.ID] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return 0, err
	}

	fresh := FilterNew(batch, existing)
	if len(fresh) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(fresh))
	for i, e := range fresh {
		docs[i] = e
	}
	if _, err := s.entries.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("inserting entries: %w", err)
	}
	return len(fresh), nil
}

// FilterNew returns the entries whose ids are absent from existing,
// preserving batch order.
func FilterNew(batch []models.Entry, existing map[string]struct{}) []models.Entry {
	var fresh []models.Entry
	for _, e := range batch {
		if _, ok := existing[e.ID]; !ok {
			fresh = append(fresh, e)
		}
	}
	return fresh
}

// FindPage returns one page of entries, newest first, optionally filtered
// to entries carrying the given tag. An out-of-range page yields an empty
// data slice with the totals still filled in.
func (s *Store) FindPage(ctx context.Context, page int, tag string) (models.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.M{}
	if tag != "" {
		filter["tags.tag"] = tag
	}

	total, err := s.entries.CountDocuments(ctx, filter)
	if err != nil {
		return models.Page{}, fmt.Errorf("counting entries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "time_added", Value: -1}}).
		SetSkip(Skip(page)).
		SetLimit(PageSize)

	cursor, err := s.entries.Find(ctx, filter, opts)
	if err != nil {
		return models.Page{}, fmt.Errorf("querying page %d: %w", page, err)
	}
	defer cursor.Close(ctx)

	data := make([]models.Entry, 0, PageSize)
	for cursor.Next(ctx) {
		var e models.Entry
		if err := cursor.Decode(&e); err != nil {
			return models.Page{}, fmt.Errorf("decoding entry: %w", err)
		}
		data = append(data, e)
	}
	if err := cursor.Err(); err != nil {
		return models.Page{}, err
	}

	return models.Page{
		Data:        data,
		TotalPages:  TotalPages(total),
		CurrentPage: page,
	}, nil
}

// TagPool returns the distinct tag names across all stored entries.
// Untagged entries contribute nothing.
func (s *Store) TagPool(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	values, err := s.entries.Distinct(ctx, "tags.tag", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("aggregating tags: %w", err)
	}

	pool := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			pool = append(pool, name)
		}
	}
	return pool, nil
}

// Skip is the number of entries preceding a 1-based page.
func Skip(page int) int64 {
	return int64(page-1) * PageSize
}

// TotalPages is ceiling(total / PageSize).
func TotalPages(total int64) int64 {
	return (total + PageSize - 1) / PageSize
}
