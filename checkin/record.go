package checkin

import "github.com/tidwall/gjson"

// Record is a single row fetched from an Airtable table.
// Field names are Airtable's own names, which usually contain spaces and
// punctuation, so fields are looked up by key rather than by gjson path.
type Record struct {
	ID     string
	fields gjson.Result
}

// NewRecord builds a Record from a JSON object of fields.
func NewRecord(id string, fieldsJSON string) Record {
	return Record{ID: id, fields: gjson.Parse(fieldsJSON)}
}

func parseRecord(json string) Record {
	data := gjson.Parse(json)
	return Record{
		ID:     data.Get("id").String(),
		fields: data.Get("fields"),
	}
}

func (r Record) field(name string) gjson.Result {
	if name == "" || !r.fields.IsObject() {
		return gjson.Result{}
	}
	return r.fields.Map()[name]
}

func (r Record) StringForField(name string) (string, bool) {
	result := r.field(name)
	return result.String(), result.Exists() && (result.Value() != nil)
}

// IDsForField returns the record ids held in a linked record field.
// Airtable omits empty fields entirely, so a missing field yields nil.
func (r Record) IDsForField(name string) []string {
	result := r.field(name)
	if !result.Exists() {
		return nil
	}
	if !result.IsArray() {
		if s := result.String(); s != "" {
			return []string{s}
		}
		return nil
	}
	var ids []string
	for _, v := range result.Array() {
		if s := v.String(); s != "" {
			ids = append(ids, s)
		}
	}
	return ids
}

// Fields flattens the record into a key-value mapping.
// Non-string values keep their raw JSON text.
func (r Record) Fields() map[string]string {
	result := make(map[string]string)
	r.fields.ForEach(func(key, value gjson.Result) bool {
		result[key.String()] = value.String()
		return true
	})
	return result
}
