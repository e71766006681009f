package pocket

import (
	"sort"
	"strconv"

	"pocket-lite/models"
)

// Normalize maps a raw Pocket batch into stored Entry shapes.
func Normalize(items []RawItem) []models.Entry {
	entries := make([]models.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, NormalizeItem(item))
	}
	return entries
}

// NormalizeItem applies the upstream-to-internal field mapping:
//
//	item_id        -> id
//	given_url      -> url
//	resolved_title -> title
//	excerpt        -> description
//	time_favorited -> time_added
//	time_to_read   -> read_time
//	word_count     -> word_count
//	tags           -> tags (flattened)
func NormalizeItem(item RawItem) models.Entry {
	entry := models.Entry{
		ID:          item.ItemID,
		URL:         item.GivenURL,
		Title:       item.ResolvedTitle,
		Description: item.Excerpt,
		TimeAdded:   parseUnix(item.TimeFavorited),
		Tags:        flattenTags(item.Tags),
	}

	if item.TimeToRead > 0 {
		rt := item.TimeToRead
		entry.ReadTime = &rt
	}
	if wc, err := strconv.Atoi(item.WordCount); err == nil && wc > 0 {
		entry.WordCount = &wc
	}

	return entry
}

// flattenTags turns the keyed tag mapping into a name-ordered sequence.
// An empty or absent mapping flattens to nil, not an empty slice: stored
// documents either omit tags entirely or carry a non-empty sequence.
func flattenTags(raw map[string]RawTag) []models.Tag {
	if len(raw) == 0 {
		return nil
	}

	tags := make([]models.Tag, 0, len(raw))
	for _, t := range raw {
		tags = append(tags, models.Tag{ItemID: t.ItemID, Tag: t.Tag})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Tag < tags[j].Tag })
	return tags
}

// parseUnix reads Pocket's string-encoded unix timestamps. Unparseable
// values become 0 so one bad record cannot fail a whole batch.
func parseUnix(s string) int64 {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}
