package checkin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/carlmjohnson/requests"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ConfigStore finds county configuration records in the central registry.
type ConfigStore interface {
	FindConfig(configID string, ctx context.Context) (Record, error)
}

// RecordStore opens a county's Airtable base.
type RecordStore interface {
	Base(apiKey string, baseID string) RecordBase
}

// RecordBase reads and writes records in a single Airtable base.
// Update accepts at most UpdateBatchSize records per call.
type RecordBase interface {
	Find(tableID string, recordID string, ctx context.Context) (Record, error)
	Update(tableID string, records []RecordUpdate, ctx context.Context) error
}

type AirtableError map[string]interface{}

// RecordUpdate is a partial field update for one record.
type RecordUpdate struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

// AirtableClient handles all Airtable API operations.
// It is constructed once per process from Settings and is safe for concurrent use.
type AirtableClient struct {
	Settings Settings
	Logger   Logger
}

func NewAirtableClient(settings Settings) *AirtableClient {
	return &AirtableClient{Settings: settings, Logger: log.Default()}
}

func (a *AirtableClient) logf(format string, v ...interface{}) {
	if a.Logger != nil {
		a.Logger.Printf(format, v...)
	}
}

// AirtableAPIBuilder returns a new requests.Builder configured for the Airtable API.
// When RecordRequests is set, traffic is captured per base for use as test fixtures.
func (a *AirtableClient) AirtableAPIBuilder(baseID string) *requests.Builder {
	endpoint := a.Settings.Airtable.Endpoint
	if endpoint == "" {
		endpoint = AirtableEndpoint
	}
	result := requests.
		URL(endpoint).
		Client(&http.Client{Timeout: HTTPRequestTimeout})
	if a.Settings.RecordRequests {
		result = result.Transport(requests.Record(nil, fmt.Sprintf("testdata/.requests/%s", baseID)))
	}
	return result
}

// FindConfig fetches a configuration record from the registry base and table
// named in Settings, using the process-wide API key.
func (a *AirtableClient) FindConfig(configID string, ctx context.Context) (Record, error) {
	return a.Base(a.Settings.Airtable.APIKey, a.Settings.Airtable.ConfigBaseID).
		Find(a.Settings.Airtable.ConfigTableID, configID, ctx)
}

func (a *AirtableClient) Base(apiKey string, baseID string) RecordBase {
	return airtableBase{client: a, apiKey: apiKey, baseID: baseID}
}

type airtableBase struct {
	client *AirtableClient
	apiKey string
	baseID string
}

func (b airtableBase) tablePath(tableID string) (string, error) {
	if b.baseID == "" {
		return "", errors.New("base id is empty")
	}
	if tableID == "" {
		return "", errors.New("table id is empty")
	}
	return fmt.Sprintf("/v0/%s/%s", url.PathEscape(b.baseID), url.PathEscape(tableID)), nil
}

// Find fetches a single record by id.
func (b airtableBase) Find(tableID string, recordID string, ctx context.Context) (Record, error) {
	path, err := b.tablePath(tableID)
	if err != nil {
		return Record{}, err
	}
	if recordID == "" {
		return Record{}, errors.New("record id is empty")
	}

	airtableError := AirtableError{}
	var json string
	err = b.client.AirtableAPIBuilder(b.baseID).
		Path(path + "/" + url.PathEscape(recordID)).
		Bearer(b.apiKey).
		ToString(&json).
		ErrorJSON(&airtableError).
		Fetch(ctx)
	if err != nil {
		b.client.logf("Airtable Error: %+v", airtableError)
		return Record{}, fmt.Errorf("failed to find record %s in table %s: %w", recordID, tableID, err)
	}
	if !gjson.Valid(json) {
		b.client.logf("Invalid Airtable Response:\n%s", json)
		return Record{}, errors.New("invalid json response")
	}
	return parseRecord(json), nil
}

// Update sends one PATCH request for records.
func (b airtableBase) Update(tableID string, records []RecordUpdate, ctx context.Context) error {
	path, err := b.tablePath(tableID)
	if err != nil {
		return err
	}
	if len(records) > UpdateBatchSize {
		return fmt.Errorf("cannot update %d records in one request, limit is %d", len(records), UpdateBatchSize)
	}
	body, err := updateRecordsBody(records)
	if err != nil {
		return err
	}

	airtableError := AirtableError{}
	err = b.client.AirtableAPIBuilder(b.baseID).
		Patch().
		Path(path).
		Bearer(b.apiKey).
		BodyBytes(body).
		ContentType("application/json").
		ErrorJSON(&airtableError).
		Fetch(ctx)
	if err != nil {
		b.client.logf("Airtable Error: %+v", airtableError)
		return fmt.Errorf("failed to update %d records in table %s: %w", len(records), tableID, err)
	}
	return nil
}

func updateRecordsBody(records []RecordUpdate) ([]byte, error) {
	body := []byte(`{"records":[]}`)
	var err error
	for _, r := range records {
		body, err = sjson.SetBytes(body, "records.-1", r)
		if err != nil {
			return nil, fmt.Errorf("failed to encode update for record %s %w", r.ID, err)
		}
	}
	return body, nil
}
