package tests

import (
	"context"
	"sort"
	"sync"

	"github.com/gofiber/fiber/v2"

	"pocket-lite/models"
	"pocket-lite/pocket"
	"pocket-lite/store"
)

// CreateTestApp initializes a new Fiber app for testing purposes.
func CreateTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return ctx.Status(code).SendString(err.Error())
		},
	})
	return app
}

// FakeStore is an in-memory EntryStore with the same dedupe and
// pagination semantics as the Mongo-backed store. Handler tests use it
// instead of assuming a running mongod.
type FakeStore struct {
	mu            sync.Mutex
	Entries       []models.Entry
	FindPageCalls int
	Err           error
}

func (f *FakeStore) InsertNew(ctx context.Context, batch []models.Entry) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}

	existing := make(map[string]struct{}, len(f.Entries))
	for _, e := range f.Entries {
		existing[e.ID] = struct{}{}
	}
	fresh := store.FilterNew(batch, existing)
	f.Entries = append(f.Entries, fresh...)
	return len(fresh), nil
}

func (f *FakeStore) FindPage(ctx context.Context, page int, tag string) (models.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FindPageCalls++
	if f.Err != nil {
		return models.Page{}, f.Err
	}

	var matching []models.Entry
	for _, e := range f.Entries {
		if tag == "" || hasTag(e, tag) {
			matching = append(matching, e)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].TimeAdded > matching[j].TimeAdded
	})

	data := make([]models.Entry, 0, store.PageSize)
	for i := store.Skip(page); i < int64(len(matching)) && len(data) < store.PageSize; i++ {
		data = append(data, matching[i])
	}

	return models.Page{
		Data:        data,
		TotalPages:  store.TotalPages(int64(len(matching))),
		CurrentPage: page,
	}, nil
}

func (f *FakeStore) TagPool(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}

	seen := make(map[string]struct{})
	var pool []string
	for _, e := range f.Entries {
		for _, t := range e.Tags {
			if _, ok := seen[t.Tag]; !ok {
				seen[t.Tag] = struct{}{}
				pool = append(pool, t.Tag)
			}
		}
	}
	return pool, nil
}

func hasTag(e models.Entry, tag string) bool {
	for _, t := range e.Tags {
		if t.Tag == tag {
			return true
		}
	}
	return false
}

// FakeFetcher serves a canned batch or error in place of the Pocket API.
type FakeFetcher struct {
	Items []pocket.RawItem
	Err   error
	Calls int
}

func (f *FakeFetcher) FetchFavorites(ctx context.Context) ([]pocket.RawItem, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Items, nil
}

// FakeNotifier records auth-failure alerts instead of sending mail.
type FakeNotifier struct {
	AuthFailures int
	LastCause    error
}

func (f *FakeNotifier) NotifyAuthFailure(runID string, cause error) error {
	f.AuthFailures++
	f.LastCause = cause
	return nil
}
