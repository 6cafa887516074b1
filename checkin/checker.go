package checkin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Logger receives diagnostics from the public operations. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Checker serves the poll worker check-in operations for any county.
// Each call resolves the county configuration afresh; nothing is cached
// between calls.
type Checker struct {
	Settings Settings
	Configs  ConfigStore
	Records  RecordStore
	Logger   Logger

	phone *PhoneNormaliser
}

// NewChecker wires a Checker to its stores. An AirtableClient serves as both.
func NewChecker(settings Settings, configs ConfigStore, records RecordStore) (*Checker, error) {
	c := &Checker{
		Settings: settings,
		Configs:  configs,
		Records:  records,
		Logger:   log.Default(),
	}
	if settings.Phone.Normalise {
		phone, err := NewPhoneNormaliser(settings.Phone.DefaultCountry)
		if err != nil {
			return nil, err
		}
		phone.Logger = checkerLogger{c}
		c.phone = phone
	}
	return c, nil
}

// checkerLogger forwards to whichever Logger the Checker holds when called.
type checkerLogger struct {
	c *Checker
}

func (l checkerLogger) Printf(format string, v ...interface{}) {
	l.c.logf(format, v...)
}

func (c *Checker) logf(format string, v ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, v...)
	}
}

func (c *Checker) resolveConfig(configID string, ctx context.Context) (TenantConfig, error) {
	record, err := c.Configs.FindConfig(configID, ctx)
	if err != nil {
		return TenantConfig{}, &Error{Op: "resolveConfig", Kind: KindConfigLookup, Err: err}
	}
	return TenantConfigFromRecord(record), nil
}

// ResolveConfig returns the configuration for configID, or an empty
// TenantConfig if it can't be fetched.
func (c *Checker) ResolveConfig(configID string, ctx context.Context) TenantConfig {
	config, err := c.resolveConfig(configID, ctx)
	if err != nil {
		c.logf("Error in ResolveConfig: %v", err)
	}
	return config
}

func (c *Checker) countyBase(config TenantConfig) RecordBase {
	apiKey := c.Settings.Airtable.APIKey
	if c.Settings.Airtable.UseTenantAPIKey && config[KeyAPIKey] != "" {
		apiKey = config[KeyAPIKey]
	}
	return c.Records.Base(apiKey, config[KeyBaseID])
}

// FetchPollWorkers returns the workers assigned to a precinct, in the order
// the precinct lists them.
func (c *Checker) FetchPollWorkers(configID string, precinctID string, ctx context.Context) ([]WorkerRecord, error) {
	const op = "FetchPollWorkers"
	config, err := c.resolveConfig(configID, ctx)
	if err != nil {
		return nil, err
	}
	base := c.countyBase(config)

	precinct, err := base.Find(config[KeyPrecinctsTableID], precinctID, ctx)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindRecordFetch, Err: err}
	}

	field := config[KeyPrecinctPollWorkersField]
	if _, ok := precinct.StringForField(field); !ok {
		return nil, &Error{Op: op, Kind: KindRecordFetch, Err: fmt.Errorf("precinct %s has no %q field", precinctID, field)}
	}
	workerIDs := precinct.IDsForField(field)
	records, err := c.fetchWorkers(base, config[KeyPollWorkersTableID], workerIDs, ctx)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindRecordFetch, Err: err}
	}

	workers := make([]WorkerRecord, len(records))
	for i, r := range records {
		workers[i] = ProjectWorkerRecord(r, config)
		if c.phone != nil {
			workers[i].Phone = c.phone.Normalise(workers[i].Phone)
		}
	}
	return workers, nil
}

// fetchWorkers fetches worker records with at most FetchConcurrency requests
// in flight. Results keep the order of ids. Once ctx is done no further
// fetches are started.
func (c *Checker) fetchWorkers(base RecordBase, tableID string, ids []string, ctx context.Context) ([]Record, error) {
	records := make([]Record, len(ids))
	limit := c.Settings.FetchConcurrency
	if limit <= 1 {
		for i, id := range ids {
			var err error
			records[i], err = base.Find(tableID, id, ctx)
			if err != nil {
				return nil, err
			}
		}
		return records, nil
	}

	errs := make([]error, len(ids))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
dispatch:
	for i, id := range ids {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break dispatch
		}
		wg.Add(1)
		go func(index int, workerID string) {
			defer wg.Done()
			defer func() { <-sem }()
			records[index], errs[index] = base.Find(tableID, workerID, ctx)
		}(i, id)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("airtable errors: %w", err)
	}
	return records, nil
}

// GetPollWorkers is FetchPollWorkers with failures logged and returned as
// an empty PollWorkers.
func (c *Checker) GetPollWorkers(configID string, precinctID string, ctx context.Context) PollWorkers {
	workers, err := c.FetchPollWorkers(configID, precinctID, ctx)
	if err != nil {
		c.logf("Error in GetPollWorkers: %v", err)
		return PollWorkers{}
	}
	return PollWorkers{WorkerData: workers}
}

// FetchPrecinct returns the precinct's display metadata and lead worker name.
func (c *Checker) FetchPrecinct(configID string, precinctID string, ctx context.Context) (PrecinctInfo, error) {
	const op = "FetchPrecinct"
	config, err := c.resolveConfig(configID, ctx)
	if err != nil {
		return PrecinctInfo{}, err
	}
	base := c.countyBase(config)

	precinct, err := base.Find(config[KeyPrecinctsTableID], precinctID, ctx)
	if err != nil {
		return PrecinctInfo{}, &Error{Op: op, Kind: KindRecordFetch, Err: err}
	}

	leadID, err := LeadReference(precinct, config)
	if err != nil {
		return PrecinctInfo{}, &Error{Op: op, Kind: KindMissingLead, Err: err}
	}
	lead, err := base.Find(config[KeyPollWorkersTableID], leadID, ctx)
	if err != nil {
		return PrecinctInfo{}, &Error{Op: op, Kind: KindRecordFetch, Err: err}
	}

	info, err := ProjectPrecinctInfo(precinct, lead, config)
	if err != nil {
		return PrecinctInfo{}, &Error{Op: op, Kind: KindMissingLead, Err: err}
	}
	return info, nil
}

// GetPrecinct is FetchPrecinct with failures logged and returned as an
// empty PrecinctInfo.
func (c *Checker) GetPrecinct(configID string, precinctID string, ctx context.Context) PrecinctInfo {
	info, err := c.FetchPrecinct(configID, precinctID, ctx)
	if err != nil {
		c.logf("Error in GetPrecinct: %v", err)
		return PrecinctInfo{}
	}
	return info
}

// WriteWorkerStatuses writes the election day status of each worker, in
// batches of UpdateBatchSize. A failed batch stops the write and leaves
// earlier batches applied. An empty update writes nothing and succeeds
// without looking up the configuration.
func (c *Checker) WriteWorkerStatuses(configID string, statuses []WorkerStatus, ctx context.Context) error {
	if len(statuses) == 0 {
		return nil
	}
	config, err := c.resolveConfig(configID, ctx)
	if err != nil {
		return err
	}
	payloads := BuildUpdatePayloads(statuses, config)
	err = FlushUpdates(c.countyBase(config), config[KeyPollWorkersTableID], payloads, UpdateBatchSize, ctx)
	if err != nil {
		return &Error{Op: "WriteWorkerStatuses", Kind: KindBatchWrite, Err: err}
	}
	return nil
}

// UpdateWorkerStatuses is WriteWorkerStatuses reporting only success.
func (c *Checker) UpdateWorkerStatuses(configID string, statuses []WorkerStatus, ctx context.Context) bool {
	if err := c.WriteWorkerStatuses(configID, statuses, ctx); err != nil {
		c.logf("Error in UpdateWorkerStatuses: %v", err)
		return false
	}
	return true
}
