// Package state records the last scene applied to the bulb.
package state

import (
	"encoding/json"
	"time"

	"github.com/cybre/yeelight-office/internal/errors"
	"go.mills.io/bitcask/v2"
)

const lastSceneKey = "last_scene"

// Record describes one scene run.
type Record struct {
	Scene          string    `json:"scene"`
	ConnectionMode string    `json:"connection_mode"`
	Succeeded      bool      `json:"succeeded"`
	FailedSteps    int       `json:"failed_steps"`
	AppliedAt      time.Time `json:"applied_at"`
}

type Store struct {
	db bitcask.DB
}

func Open(dir string) (*Store, error) {
	db, err := bitcask.Open(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "open state database")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return errors.Wrapf(s.db.Close(), "close state database")
}

func (s *Store) Save(record Record) error {
	buf, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "json marshal scene record")
	}

	if err := s.db.Put([]byte(lastSceneKey), buf); err != nil {
		return errors.Wrapf(err, "put scene record")
	}

	return nil
}

// Last returns the most recent record. ok is false when nothing was saved yet.
func (s *Store) Last() (record Record, ok bool, err error) {
	buf, err := s.db.Get([]byte(lastSceneKey))
	if err != nil {
		if errors.Is(err, bitcask.ErrKeyNotFound) {
			return Record{}, false, nil
		}

		return Record{}, false, errors.Wrapf(err, "get scene record")
	}

	if err := json.Unmarshal(buf, &record); err != nil {
		return Record{}, false, errors.Wrapf(err, "unmarshal scene record")
	}

	return record, true, nil
}
