package checkin

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// ConfigDocRow represents a single row in the county configuration documentation.
type ConfigDocRow struct {
	Key       string // Config key (e.g., "Field name: Poll Workers - Phone")
	Kind      string // "Field name", "Field value" or "Setting"
	Table     string // Airtable table the key refers to, if any
	Attribute string // Application attribute fed by the key (e.g., "phone")
	Value     string // Configured value
	Notes     string
}

// ConfigDocumentation describes how a county configuration is read.
type ConfigDocumentation struct {
	ConfigID string
	Rows     []ConfigDocRow
}

var documentedConfigKeys = []string{
	KeyBaseID,
	KeyAPIKey,
	KeyPrecinctsTableID,
	KeyPollWorkersTableID,
	KeyCountyName,
	KeyAppTitle,
	KeyLeadTitle,
	KeyInstructions,
	KeyPrecinctPollWorkersField,
	KeyPrecinctDescriptionField,
	KeyPrecinctLeadField,
	KeyWorkerFirstNameField,
	KeyWorkerLastNameField,
	KeyWorkerPhoneField,
	KeyWorkerEmailField,
	KeyWorkerStatusField,
	KeyStatusAttendedValue,
	KeyStatusNoShowValue,
}

// GenerateConfigDocumentation lists every key this package reads, with the
// county's value, followed by any keys present in the config that are not read.
func GenerateConfigDocumentation(configID string, config TenantConfig) ConfigDocumentation {
	doc := ConfigDocumentation{
		ConfigID: configID,
		Rows:     []ConfigDocRow{},
	}

	known := make(map[string]bool)
	for _, key := range documentedConfigKeys {
		known[key] = true
		row := createConfigDocRow(key)
		value, exists := config[key]
		switch {
		case key == KeyAPIKey && exists:
			row.Value = "(set)"
		case exists:
			row.Value = value
		default:
			row.Notes = "Missing"
		}
		doc.Rows = append(doc.Rows, row)
	}

	var extra []string
	for key := range config {
		if !known[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		row := createConfigDocRow(key)
		row.Value = config[key]
		row.Notes = "Not read"
		doc.Rows = append(doc.Rows, row)
	}

	return doc
}

// createConfigDocRow splits a key into its kind, table and label.
// e.g., "Field name: Poll Workers - First name" -> ("Field name", "Poll Workers", "firstName")
// e.g., "County Name" -> ("Setting", "", "countyName")
func createConfigDocRow(key string) ConfigDocRow {
	row := ConfigDocRow{Key: key, Kind: "Setting"}
	label := key
	if kind, rest, found := strings.Cut(key, ": "); found {
		row.Kind = kind
		parts := strings.Split(rest, " - ")
		row.Table = parts[0]
		label = strings.Join(parts[1:], " ")
	}
	row.Attribute = strcase.ToLowerCamel(label)
	return row
}

// FormatCSV formats the configuration documentation as CSV.
func (d ConfigDocumentation) FormatCSV() (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{fmt.Sprintf("# Config: %s", d.ConfigID)}); err != nil {
		return "", err
	}
	if err := writer.Write([]string{"Config Key", "Kind", "Table", "Attribute", "Value", "Notes"}); err != nil {
		return "", err
	}
	for _, row := range d.Rows {
		if err := writer.Write([]string{row.Key, row.Kind, row.Table, row.Attribute, row.Value, row.Notes}); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}
