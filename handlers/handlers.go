package handlers

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pocket-lite/cache"
	"pocket-lite/models"
	"pocket-lite/pocket"
)

// EntryStore is the persistence surface the handlers depend on.
type EntryStore interface {
	InsertNew(ctx context.Context, batch []models.Entry) (int, error)
	FindPage(ctx context.Context, page int, tag string) (models.Page, error)
	TagPool(ctx context.Context) ([]string, error)
}

// Fetcher retrieves the raw favorites batch from Pocket.
type Fetcher interface {
	FetchFavorites(ctx context.Context) ([]pocket.RawItem, error)
}

// Notifier alerts an operator channel about upstream auth failures.
type Notifier interface {
	NotifyAuthFailure(runID string, cause error) error
}

// PageCache is the get/set-with-ttl capability fronting paginated reads.
type PageCache interface {
	Get(key string) (models.Page, bool)
	Set(key string, page models.Page, ttl time.Duration)
}

// Handler wires the sync and read endpoints to their collaborators.
type Handler struct {
	Store       EntryStore
	Fetcher     Fetcher
	Cache       PageCache
	Notifier    Notifier
	SecurityKey string
}

// SetupRoutes registers all routes on app. The sync trigger is
// unauthenticated (it is hit by an external cron caller); the read
// endpoints sit behind the api-key gate.
func (h *Handler) SetupRoutes(app *fiber.App) {
	app.Post("/", h.Sync)
	app.Get("/", h.Sync)
	app.Get("/data", h.RequireAPIKey, h.Data)
	app.Get("/tags", h.RequireAPIKey, h.Tags)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"code":    404,
			"message": "NOT FOUND",
		})
	})
}

// RequireAPIKey admits the request only when the api-key header exactly
// matches the configured shared secret.
func (h *Handler) RequireAPIKey(c *fiber.Ctx) error {
	if c.Get("api-key") != h.SecurityKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"code":    401,
			"message": "Unauthorized",
		})
	}
	return c.Next()
}

// Sync runs one fetch -> normalize -> dedupe -> persist cycle. A failed
// upstream fetch alerts the operator and answers 401; it is never retried.
func (h *Handler) Sync(c *fiber.Ctx) error {
	runID := uuid.New().String()

	items, err := h.Fetcher.FetchFavorites(c.UserContext())
	if err != nil {
		log.Printf("sync %s: fetching favorites: %v", runID, err)
		if notifyErr := h.Notifier.NotifyAuthFailure(runID, err); notifyErr != nil {
			log.Printf("sync %s: sending alert mail: %v", runID, notifyErr)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "401",
			"message": "Error with authorization (unknown access token)",
		})
	}

	inserted, err := h.Store.InsertNew(c.UserContext(), pocket.Normalize(items))
	if err != nil {
		log.Printf("sync %s: persisting entries: %v", runID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server error")
	}

	log.Printf("sync %s: fetched %d items, inserted %d new", runID, len(items), inserted)
	return c.JSON(fiber.Map{"code": 200, "message": "OK"})
}

// Data serves one page of entries, tag-filterable, cached per (page, tag)
// for cache.TTL.
func (h *Handler) Data(c *fiber.Ctx) error {
	page := ParsePage(c.Query("page"))
	tag := c.Query("tag")

	key := cache.Key(page, tag)
	if cached, ok := h.Cache.Get(key); ok {
		return c.JSON(cached)
	}

	result, err := h.Store.FindPage(c.UserContext(), page, tag)
	if err != nil {
		log.Printf("data: querying page %d tag %q: %v", page, tag, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server error")
	}

	h.Cache.Set(key, result, cache.TTL)
	return c.JSON(result)
}

// Tags serves the distinct tag names across all stored entries.
func (h *Handler) Tags(c *fiber.Ctx) error {
	pool, err := h.Store.TagPool(c.UserContext())
	if err != nil {
		log.Printf("tags: aggregating tag pool: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Server error")
	}

	if pool == nil {
		pool = []string{}
	}
	return c.JSON(fiber.Map{"tagPool": pool})
}

// ParsePage validates the page query parameter, defaulting to 1 when it
// is absent, unparseable, or less than 1. Raw query values are never
// trusted past this point.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
