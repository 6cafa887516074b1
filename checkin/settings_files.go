package checkin

import (
	"bytes"
	_ "embed"
	"io"
	"os"
)

//go:embed defaults.yaml
var defaultSettings []byte

// SettingsFile is a YAML source layered over the embedded defaults.
type SettingsFile struct {
	Name   string
	Reader io.Reader
	Length int
}

func DefaultSettingsFile() SettingsFile {
	return SettingsFileFromBytes("defaults.yaml", defaultSettings)
}

func SettingsFileFromBytes(name string, b []byte) SettingsFile {
	return SettingsFile{
		Name:   name,
		Reader: bytes.NewReader(b),
		Length: len(b),
	}
}

func ReadSettingsFile(name string) (SettingsFile, error) {
	var result SettingsFile
	b, err := os.ReadFile(name)
	if err == nil {
		result = SettingsFileFromBytes(name, b)
	}
	return result, err
}
