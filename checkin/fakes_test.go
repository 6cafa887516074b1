package checkin

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// fakeAirtable is an in-memory ConfigStore and RecordStore.
type fakeAirtable struct {
	mu      sync.Mutex
	configs map[string]string            // config id -> fields json
	tables  map[string]map[string]string // table id -> record id -> fields json
	apiKeys []string
	finds   []string
	updates [][]RecordUpdate
	// failUpdateAt makes the nth Update call (1-based) fail.
	failUpdateAt int
}

func (f *fakeAirtable) FindConfig(configID string, ctx context.Context) (Record, error) {
	fields, exists := f.configs[configID]
	if !exists {
		return Record{}, fmt.Errorf("config %s not found", configID)
	}
	return NewRecord(configID, fields), nil
}

func (f *fakeAirtable) Base(apiKey string, baseID string) RecordBase {
	f.mu.Lock()
	f.apiKeys = append(f.apiKeys, apiKey)
	f.mu.Unlock()
	return fakeBase{fake: f, baseID: baseID}
}

type fakeBase struct {
	fake   *fakeAirtable
	baseID string
}

func (b fakeBase) Find(tableID string, recordID string, ctx context.Context) (Record, error) {
	b.fake.mu.Lock()
	b.fake.finds = append(b.fake.finds, recordID)
	b.fake.mu.Unlock()
	if b.baseID == "" {
		return Record{}, errors.New("base id is empty")
	}
	fields, exists := b.fake.tables[tableID][recordID]
	if !exists {
		return Record{}, fmt.Errorf("record %s not found in %s", recordID, tableID)
	}
	return NewRecord(recordID, fields), nil
}

func (b fakeBase) Update(tableID string, records []RecordUpdate, ctx context.Context) error {
	b.fake.mu.Lock()
	defer b.fake.mu.Unlock()
	if b.fake.failUpdateAt == len(b.fake.updates)+1 {
		b.fake.updates = append(b.fake.updates, nil)
		return errors.New("airtable unavailable")
	}
	b.fake.updates = append(b.fake.updates, records)
	return nil
}

// discardLogger collects log lines instead of printing them.
type discardLogger struct {
	lines []string
}

func (l *discardLogger) Printf(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}
