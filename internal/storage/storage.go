// /internal/storage/storage.go
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const usageHistoryLimit = 50

// Storage persists bot feature data (command usage history) in a JSON file
// store keyed by guild ID.
type Storage struct {
	ds *datastore.DataStore
}

type UsageRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Datetime  time.Time `json:"datetime"`
}

type Record struct {
	UsageHistory []UsageRecord `json:"usage_history"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// AddUsage appends a usage record for a guild, keeping at most
// usageHistoryLimit entries (oldest dropped first).
func (s *Storage) AddUsage(guildID string, rec UsageRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.UsageHistory = append(record.UsageHistory, rec)
	if len(record.UsageHistory) > usageHistoryLimit {
		record.UsageHistory = record.UsageHistory[len(record.UsageHistory)-usageHistoryLimit:]
	}

	s.ds.Add(guildID, record)
	return nil
}

// UsageHistory returns the recorded command usage for a guild, oldest first.
func (s *Storage) UsageHistory(guildID string) ([]UsageRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.UsageHistory, nil
}

func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		newRecord := &Record{UsageHistory: []UsageRecord{}}
		s.ds.Add(guildID, newRecord)
		return newRecord, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}
	return &record, nil
}
