package checkin

import (
	"errors"
	"fmt"

	"go.uber.org/config"
)

// Settings is the process-wide configuration. It is loaded once at startup
// and must not be modified afterwards.
type Settings struct {
	Airtable         AirtableSettings `yaml:"airtable"`
	FetchConcurrency int              `yaml:"fetchConcurrency"`
	RecordRequests   bool             `yaml:"recordRequests"`
	Phone            PhoneSettings    `yaml:"phone"`
	Server           ServerSettings   `yaml:"server"`
}

type AirtableSettings struct {
	APIKey        string `yaml:"apiKey"`
	Endpoint      string `yaml:"endpoint"`
	ConfigBaseID  string `yaml:"configBaseId"`
	ConfigTableID string `yaml:"configTableId"`
	// UseTenantAPIKey selects the county's own "API Key" config value, when set,
	// instead of APIKey for reads and writes against the county base.
	UseTenantAPIKey bool `yaml:"useTenantApiKey"`
}

type PhoneSettings struct {
	Normalise      bool   `yaml:"normalise"`
	DefaultCountry string `yaml:"defaultCountry"`
}

type ServerSettings struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

// LoadSettings reads the embedded defaults followed by sources, later sources
// overriding earlier ones. ${VAR} and ${VAR:default} references are expanded
// with lookup, normally os.LookupEnv.
func LoadSettings(lookup func(string) (string, bool), sources ...SettingsFile) (Settings, error) {
	var result Settings
	options := []config.YAMLOption{config.Source(DefaultSettingsFile().Reader)}
	for _, s := range sources {
		if s.Length > 0 {
			options = append(options, config.Source(s.Reader))
		}
	}
	options = append(options, config.Expand(lookup))
	yaml, err := config.NewYAML(options...)
	if err != nil {
		return result, fmt.Errorf("failed to read yaml config %w", err)
	}
	readError := func(key string, cause error) error {
		return fmt.Errorf("failed to read '%s' from yaml config %w", key, cause)
	}
	key := "airtable"
	err = yaml.Get(key).Populate(&result.Airtable)
	if err != nil {
		return result, readError(key, err)
	}
	key = "fetchConcurrency"
	err = yaml.Get(key).Populate(&result.FetchConcurrency)
	if err != nil {
		return result, readError(key, err)
	}
	key = "recordRequests"
	err = yaml.Get(key).Populate(&result.RecordRequests)
	if err != nil {
		return result, readError(key, err)
	}
	key = "phone"
	err = yaml.Get(key).Populate(&result.Phone)
	if err != nil {
		return result, readError(key, err)
	}
	key = "server"
	err = yaml.Get(key).Populate(&result.Server)
	if err != nil {
		return result, readError(key, err)
	}

	return result, result.Validate()
}

func (s Settings) Validate() error {
	var errs []error
	if s.Airtable.APIKey == "" {
		errs = append(errs, errors.New("airtable.apiKey is required"))
	}
	if s.Airtable.ConfigBaseID == "" {
		errs = append(errs, errors.New("airtable.configBaseId is required"))
	}
	if s.Airtable.ConfigTableID == "" {
		errs = append(errs, errors.New("airtable.configTableId is required"))
	}
	if s.FetchConcurrency < 1 {
		errs = append(errs, fmt.Errorf("fetchConcurrency must be at least 1, have %d", s.FetchConcurrency))
	}
	if s.Phone.Normalise && s.Phone.DefaultCountry == "" {
		errs = append(errs, errors.New("phone.defaultCountry is required when phone.normalise is set"))
	}
	return errors.Join(errs...)
}
