package checkin

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// UpdateBatchSize is Airtable's limit on records per update request.
const UpdateBatchSize = 10

// WorkerStatus is a requested status change for one poll worker.
type WorkerStatus struct {
	ID     string
	Status Status
}

// ParseWorkerStatuses decodes a {"<worker id>": "<status>"} object,
// keeping the order the ids appear in the document. A repeated id keeps its
// first position and its last status.
func ParseWorkerStatuses(json []byte) ([]WorkerStatus, error) {
	if !gjson.ValidBytes(json) {
		return nil, errors.New("invalid json")
	}
	data := gjson.ParseBytes(json)
	if !data.IsObject() {
		return nil, errors.New("worker statuses must be a json object")
	}
	statuses := []WorkerStatus{}
	seen := make(map[string]int)
	data.ForEach(func(key, value gjson.Result) bool {
		id, status := key.String(), Status(value.String())
		if i, exists := seen[id]; exists {
			statuses[i].Status = status
			return true
		}
		seen[id] = len(statuses)
		statuses = append(statuses, WorkerStatus{ID: id, Status: status})
		return true
	})
	return statuses, nil
}

// BuildUpdatePayloads turns status changes into record updates that set the
// configured status field to the configured option string.
func BuildUpdatePayloads(statuses []WorkerStatus, config TenantConfig) []RecordUpdate {
	field := config[KeyWorkerStatusField]
	result := make([]RecordUpdate, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, RecordUpdate{
			ID: s.ID,
			Fields: map[string]interface{}{
				field: MapEnumToRawStatus(s.Status, config.AttendedValue(), config.NoShowValue()),
			},
		})
	}
	return result
}

// FlushUpdates writes payloads in chunks of pageSize, one request per chunk,
// in order. The first failed chunk stops the flush; earlier chunks stay written.
func FlushUpdates(base RecordBase, tableID string, payloads []RecordUpdate, pageSize int, ctx context.Context) error {
	if pageSize < 1 || pageSize > UpdateBatchSize {
		pageSize = UpdateBatchSize
	}
	for n := 0; n < len(payloads); n += pageSize {
		end := min(n+pageSize, len(payloads))
		if err := base.Update(tableID, payloads[n:end], ctx); err != nil {
			return fmt.Errorf("failed to write records %d-%d of %d: %w", n+1, end, len(payloads), err)
		}
	}
	return nil
}
