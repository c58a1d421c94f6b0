// Package prefstore keeps the preferences of the device in a local bbolt file. Local storage is the
// source of truth right after a change, the copy saved with the user on the backend trails it.
package prefstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cuff-app/cuff/pkg/model"
	"go.etcd.io/bbolt"
)

const (
	bucket = "preferences"
	key    = "cuff_preferences"
)

// Open opens the store at path, creating the file and bucket if needed.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %v", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %v", bucket, err)
	}

	return &Store{db: db}, nil
}

type Store struct {
	db *bbolt.DB
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the saved preferences or the defaults if nothing was saved yet. Flags which aren't a
// literal true are off and an unknown notification type falls back to the default.
func (s *Store) Load() (model.StoredPreferences, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if value := tx.Bucket([]byte(bucket)).Get([]byte(key)); value != nil {
			data = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return model.DefaultStoredPreferences(), fmt.Errorf("failed to read preferences: %v", err)
	}
	if data == nil {
		return model.DefaultStoredPreferences(), nil
	}

	return decode(data)
}

// Save replaces the saved preferences.
func (s *Store) Save(prefs model.StoredPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %v", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save preferences: %v", err)
	}
	return nil
}

func decode(data []byte) (model.StoredPreferences, error) {
	var stored struct {
		NotificationType string `json:"notificationType"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return model.DefaultStoredPreferences(), fmt.Errorf("failed to decode preferences: %v", err)
	}

	prefs := model.DefaultStoredPreferences()
	prefs.Preferences = model.ParseDietaryPreferences(string(data))
	if t, ok := model.ParseNotificationType(stored.NotificationType); ok {
		prefs.NotificationType = t
	}
	return prefs, nil
}
