package checkin

// TenantConfig is a county's configuration record flattened to key-value pairs.
// Keys are descriptive labels, values are either Airtable field names or the
// literal option strings stored in those fields.
type TenantConfig map[string]string

const (
	KeyBaseID             = "Base ID"
	KeyAPIKey             = "API Key"
	KeyPrecinctsTableID   = "Precincts table ID"
	KeyPollWorkersTableID = "Poll Workers table ID"

	KeyCountyName   = "County Name"
	KeyAppTitle     = "App Title"
	KeyLeadTitle    = "Lead Title"
	KeyInstructions = "UI Instructions"

	KeyPrecinctPollWorkersField = "Field name: Precincts - Poll Workers"
	KeyPrecinctDescriptionField = "Field name: Precinct - Description"
	KeyPrecinctLeadField        = "Field name: Precinct - Lead"

	KeyWorkerFirstNameField = "Field name: Poll Workers - First name"
	KeyWorkerLastNameField  = "Field name: Poll Workers - Last name"
	KeyWorkerPhoneField     = "Field name: Poll Workers - Phone"
	KeyWorkerEmailField     = "Field name: Poll Workers - Email"
	KeyWorkerStatusField    = "Field name: Poll Workers - Election Day Status"

	KeyStatusAttendedValue = "Field value: Poll Workers - status - Attended"
	KeyStatusNoShowValue   = "Field value: Poll Workers - status - No show"
)

// TenantConfigFromRecord flattens a configuration record.
func TenantConfigFromRecord(record Record) TenantConfig {
	return TenantConfig(record.Fields())
}

func (c TenantConfig) AttendedValue() string {
	return c[KeyStatusAttendedValue]
}

func (c TenantConfig) NoShowValue() string {
	return c[KeyStatusNoShowValue]
}
