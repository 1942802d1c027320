package storage

import (
	"encoding/json"

	"github.com/hakim/osintdash/internal/ratelimit"
	"go.etcd.io/bbolt"
)

// GetUsage retrieves the usage record for an API key.
// The second return value reports whether a record exists.
func (s *Store) GetUsage(apiKey string) (ratelimit.UsageRecord, bool, error) {
	var rec ratelimit.UsageRecord
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketUsage)).Get([]byte(apiKey))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		found = true
		return nil
	})

	return rec, found, err
}

// PutUsage persists the usage record for an API key
func (s *Store) PutUsage(apiKey string, rec ratelimit.UsageRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketUsage)).Put([]byte(apiKey), data)
	})
}

// DeleteUsage removes the usage record for an API key
func (s *Store) DeleteUsage(apiKey string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketUsage)).Delete([]byte(apiKey))
	})
}

// AllUsage retrieves every stored usage record keyed by API key
func (s *Store) AllUsage() (map[string]ratelimit.UsageRecord, error) {
	all := make(map[string]ratelimit.UsageRecord)

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketUsage)).ForEach(func(k, v []byte) error {
			var rec ratelimit.UsageRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			all[string(k)] = rec
			return nil
		})
	})

	if err != nil {
		return nil, err
	}
	return all, nil
}

// ClearUsage drops all usage data
func (s *Store) ClearUsage() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketUsage)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketUsage))
		return err
	})
}
