package search

import (
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"student-accommodation-portal/internal/models"
)

// FilterParams mirrors the browse filters on the full-text search path.
// PriceRange takes the same four buckets as the SQL browse endpoint, with
// the same inclusive boundaries.
type FilterParams struct {
	Query      string
	RoomType   models.RoomType
	LocationID uint
	PriceRange string
	Limit      int64
}

// FilterSearch performs a full-text search constrained by the browse filters
func (s *SearchClient) FilterSearch(params FilterParams) ([]document, error) {
	var filters []string

	if params.RoomType != "" {
		filters = append(filters, fmt.Sprintf("room_type = '%s'", params.RoomType))
	}

	if params.LocationID != 0 {
		filters = append(filters, fmt.Sprintf("location_id = %d", params.LocationID))
	}

	switch params.PriceRange {
	case "0-300":
		filters = append(filters, "price <= 300")
	case "300-500":
		filters = append(filters, "price >= 300 AND price <= 500")
	case "500-700":
		filters = append(filters, "price >= 500 AND price <= 700")
	case "700+":
		filters = append(filters, "price >= 700")
	}

	// Combine filters
	var filterStr string
	if len(filters) > 0 {
		filterStr = strings.Join(filters, " AND ")
	}

	// Default limit
	if params.Limit == 0 {
		params.Limit = 20
	}

	searchReq := &meilisearch.SearchRequest{
		Limit: params.Limit,
		Sort:  []string{"created_at:desc"},
	}
	if filterStr != "" {
		searchReq.Filter = filterStr
	}

	searchRes, err := s.client.Index(s.index).Search(params.Query, searchReq)
	if err != nil {
		return nil, err
	}

	return hitsToDocuments(searchRes.Hits)
}
