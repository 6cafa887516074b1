package checkin

import (
	"encoding/json"
	"fmt"
)

// WorkerRecord is a poll worker as returned to the web application.
// Empty fields are omitted, matching how Airtable omits empty cells.
type WorkerRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Status    Status `json:"status"`
}

// PollWorkers is the result of GetPollWorkers. A nil WorkerData marks a
// failed lookup and encodes as {}; an empty precinct encodes as {"workerData":[]}.
type PollWorkers struct {
	WorkerData []WorkerRecord `json:"workerData"`
}

func (p PollWorkers) IsEmpty() bool {
	return p.WorkerData == nil
}

func (p PollWorkers) MarshalJSON() ([]byte, error) {
	if p.WorkerData == nil {
		return []byte(`{}`), nil
	}
	type pollWorkers PollWorkers
	return json.Marshal(pollWorkers(p))
}

// PrecinctInfo is the precinct metadata shown at the top of the check-in page.
type PrecinctInfo struct {
	AppTitle     string `json:"appTitle,omitempty"`
	CountyName   string `json:"countyName,omitempty"`
	LeadTitle    string `json:"leadTitle,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Description  string `json:"description,omitempty"`
	LeadName     string `json:"leadName,omitempty"`
}

func (p PrecinctInfo) IsEmpty() bool {
	return p == PrecinctInfo{}
}

// ProjectWorkerRecord reads the configured worker fields out of a raw record.
// Missing fields are left empty.
func ProjectWorkerRecord(raw Record, config TenantConfig) WorkerRecord {
	result := WorkerRecord{ID: raw.ID}
	result.FirstName, _ = raw.StringForField(config[KeyWorkerFirstNameField])
	result.LastName, _ = raw.StringForField(config[KeyWorkerLastNameField])
	result.Phone, _ = raw.StringForField(config[KeyWorkerPhoneField])
	result.Email, _ = raw.StringForField(config[KeyWorkerEmailField])
	rawStatus, _ := raw.StringForField(config[KeyWorkerStatusField])
	result.Status = MapRawStatusToEnum(rawStatus, config.AttendedValue(), config.NoShowValue())
	return result
}

// LeadReference returns the id of the worker linked as the precinct lead.
func LeadReference(precinct Record, config TenantConfig) (string, error) {
	field := config[KeyPrecinctLeadField]
	ids := precinct.IDsForField(field)
	if len(ids) == 0 {
		return "", &MissingLeadError{PrecinctID: precinct.ID, Field: field}
	}
	return ids[0], nil
}

// ProjectPrecinctInfo combines county display settings, the precinct record
// and its lead worker record.
func ProjectPrecinctInfo(precinct Record, lead Record, config TenantConfig) (PrecinctInfo, error) {
	var result PrecinctInfo
	if _, err := LeadReference(precinct, config); err != nil {
		return result, err
	}
	result.AppTitle = config[KeyAppTitle]
	result.CountyName = config[KeyCountyName]
	result.LeadTitle = config[KeyLeadTitle]
	result.Instructions = config[KeyInstructions]
	result.Description, _ = precinct.StringForField(config[KeyPrecinctDescriptionField])

	firstName, _ := lead.StringForField(config[KeyWorkerFirstNameField])
	lastName, _ := lead.StringForField(config[KeyWorkerLastNameField])
	result.LeadName = fmt.Sprintf("%s %s", firstName, lastName)
	return result, nil
}
