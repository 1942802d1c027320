package storage

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/hakim/osintdash/internal/models"
	"go.etcd.io/bbolt"
)

// SaveSearch persists a search metadata record to the database
func (s *Store) SaveSearch(meta *models.SearchMeta) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Marshal search metadata to JSON
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}

		// Store in searches bucket
		searches := tx.Bucket([]byte(bucketSearches))
		if err := searches.Put([]byte(meta.ID), data); err != nil {
			return err
		}

		// Update search index (query -> []search_id mapping)
		index := tx.Bucket([]byte(bucketSearchIndex))
		queryKey := []byte(meta.Query)

		// Get existing search IDs for this query
		var searchIDs []string
		if existing := index.Get(queryKey); existing != nil {
			if err := json.Unmarshal(existing, &searchIDs); err != nil {
				return err
			}
		}

		// Append new search ID if not already present
		found := false
		for _, id := range searchIDs {
			if id == meta.ID {
				found = true
				break
			}
		}
		if !found {
			searchIDs = append(searchIDs, meta.ID)
		}

		// Save updated index
		indexData, err := json.Marshal(searchIDs)
		if err != nil {
			return err
		}
		return index.Put(queryKey, indexData)
	})
}

// GetSearch retrieves a search metadata record by ID
func (s *Store) GetSearch(id string) (*models.SearchMeta, error) {
	var meta *models.SearchMeta

	err := s.db.View(func(tx *bbolt.Tx) error {
		searches := tx.Bucket([]byte(bucketSearches))
		data := searches.Get([]byte(id))
		if data == nil {
			return nil // Not found
		}

		meta = &models.SearchMeta{}
		return json.Unmarshal(data, meta)
	})

	return meta, err
}

// ListSearches retrieves all search metadata records for a query, sorted by StartedAt descending
func (s *Store) ListSearches(query string) ([]*models.SearchMeta, error) {
	var searches []*models.SearchMeta

	err := s.db.View(func(tx *bbolt.Tx) error {
		// Get search IDs from index
		index := tx.Bucket([]byte(bucketSearchIndex))
		data := index.Get([]byte(query))
		if data == nil {
			return nil // No searches for this query
		}

		var searchIDs []string
		if err := json.Unmarshal(data, &searchIDs); err != nil {
			return err
		}

		// Retrieve each search
		searchBucket := tx.Bucket([]byte(bucketSearches))
		for _, id := range searchIDs {
			searchData := searchBucket.Get([]byte(id))
			if searchData != nil {
				var meta models.SearchMeta
				if err := json.Unmarshal(searchData, &meta); err != nil {
					return err
				}
				searches = append(searches, &meta)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Sort by StartedAt descending (newest first)
	sort.Slice(searches, func(i, j int) bool {
		return searches[i].StartedAt.After(searches[j].StartedAt)
	})

	return searches, nil
}

// UpdateSearchStatus updates the status of a search and sets CompletedAt if applicable
func (s *Store) UpdateSearchStatus(id string, status models.SearchStatus) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		searches := tx.Bucket([]byte(bucketSearches))

		// Retrieve existing search
		data := searches.Get([]byte(id))
		if data == nil {
			return nil // Not found, no-op
		}

		var meta models.SearchMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}

		// Update status
		meta.Status = status

		// Set CompletedAt if transitioning to terminal state
		if (status == models.StatusComplete || status == models.StatusFailed) && meta.CompletedAt == nil {
			now := time.Now()
			meta.CompletedAt = &now
		}

		// Save updated search
		updatedData, err := json.Marshal(&meta)
		if err != nil {
			return err
		}
		return searches.Put([]byte(id), updatedData)
	})
}
