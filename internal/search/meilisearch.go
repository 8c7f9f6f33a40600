package search

import (
	"encoding/json"
	"strconv"

	"github.com/meilisearch/meilisearch-go"

	"student-accommodation-portal/internal/models"
)

type SearchClient struct {
	client *meilisearch.Client
	index  string
}

// document is the flattened listing shape stored in the search index.
// Only publicly listed accommodations are ever indexed.
type document struct {
	ID             uint    `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	RoomType       string  `json:"room_type"`
	Price          float64 `json:"price"`
	LocationID     uint    `json:"location_id"`
	Location       string  `json:"location"`
	AvailableRooms uint    `json:"available_rooms"`
	CreatedAt      int64   `json:"created_at"`
}

func toDocument(a *models.Accommodation) document {
	return document{
		ID:             a.ID,
		Title:          a.Title,
		Description:    a.Description,
		RoomType:       string(a.RoomType),
		Price:          a.Price,
		LocationID:     a.LocationID,
		Location:       a.Location.Name,
		AvailableRooms: a.AvailableRooms,
		CreatedAt:      a.CreatedAt.Unix(),
	}
}

func NewSearchClient(host, apiKey string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &SearchClient{
		client: client,
		index:  "accommodations",
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	// Configure searchable attributes
	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"title",
		"description",
		"location",
	})
	if err != nil {
		return err
	}

	// Configure filterable attributes
	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"room_type",
		"location_id",
		"price",
	})
	if err != nil {
		return err
	}

	// Configure sortable attributes
	_, err = s.client.Index(s.index).UpdateSortableAttributes(&[]string{
		"price",
		"created_at",
	})
	return err
}

// IndexAccommodation indexes a public listing, or drops it from the index
// when it is no longer publicly listed.
func (s *SearchClient) IndexAccommodation(a *models.Accommodation) error {
	if !a.IsPubliclyListed() {
		return s.RemoveAccommodation(a.ID)
	}

	doc := toDocument(a)
	_, err := s.client.Index(s.index).AddDocuments([]document{doc})
	return err
}

// IndexAccommodations indexes the publicly listed subset of the given
// listings in one batch.
func (s *SearchClient) IndexAccommodations(accommodations []models.Accommodation) error {
	docs := make([]document, 0, len(accommodations))
	for i := range accommodations {
		if accommodations[i].IsPubliclyListed() {
			docs = append(docs, toDocument(&accommodations[i]))
		}
	}
	if len(docs) == 0 {
		return nil
	}

	_, err := s.client.Index(s.index).AddDocuments(docs)
	return err
}

// RemoveAccommodation deletes a listing from the index
func (s *SearchClient) RemoveAccommodation(id uint) error {
	_, err := s.client.Index(s.index).DeleteDocument(strconv.FormatUint(uint64(id), 10))
	return err
}

// ClearIndex removes every document, used before a full reindex
func (s *SearchClient) ClearIndex() error {
	_, err := s.client.Index(s.index).DeleteAllDocuments()
	return err
}

// Search performs a plain full-text search over public listings
func (s *SearchClient) Search(query string, limit int64) ([]document, error) {
	if limit == 0 {
		limit = 20
	}

	searchRes, err := s.client.Index(s.index).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	return hitsToDocuments(searchRes.Hits)
}

// hitsToDocuments converts raw search hits back into documents
func hitsToDocuments(hits []interface{}) ([]document, error) {
	docs := make([]document, 0, len(hits))
	for _, hit := range hits {
		hitJSON, err := json.Marshal(hit)
		if err != nil {
			continue
		}

		var doc document
		if err := json.Unmarshal(hitJSON, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
