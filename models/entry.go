package models

// Tag is one tag attached to an Entry, flattened from Pocket's keyed tag
// mapping.
type Tag struct {
	ItemID string `json:"item_id,omitempty" bson:"item_id,omitempty"`
	Tag    string `json:"tag" bson:"tag"`
}

// Entry represents one favorited article in the entries collection.
// Entries are written once by the ingester and never updated or deleted.
type Entry struct {
	ID          string `json:"id" bson:"id"`
	URL         string `json:"url" bson:"url"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	TimeAdded   int64  `json:"time_added" bson:"time_added"`
	ReadTime    *int   `json:"read_time,omitempty" bson:"read_time,omitempty"`
	WordCount   *int   `json:"word_count,omitempty" bson:"word_count,omitempty"`
	// Tags is nil for untagged articles: the field is omitted from the
	// stored document entirely, never written as an empty array.
	Tags []Tag `json:"tags,omitempty" bson:"tags,omitempty"`
}

// Page is one page of the /data response.
type Page struct {
	Data        []Entry `json:"data"`
	TotalPages  int64   `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
}
