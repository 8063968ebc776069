package types

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config files can spell delays the usual
// Go way ("500ms", "5s") in TOML, YAML and JSON alike.
type Duration time.Duration

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return d.UnmarshalText([]byte(s))
	}
	var ns int64
	if err := json.Unmarshal(data, &ns); err != nil {
		return err
	}
	*d = Duration(ns)
	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the application configuration that can be loaded from a
// TOML, YAML or JSON file. Zero values fall back to the defaults below.
type Config struct {
	ReportName   string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType   []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir          string   `json:"dir" yaml:"dir" toml:"dir"`
	DatabasePath string   `json:"database_path" yaml:"database_path" toml:"database_path"`
	ListenAddr   string   `json:"listen_addr" yaml:"listen_addr" toml:"listen_addr"`

	Geocoding GeocodingConfig `json:"geocoding" yaml:"geocoding" toml:"geocoding"`
}

// GeocodingConfig controls the two-phase enrichment protocol. The probe
// phase uses the short timeout and delay; the remainder of the batch uses
// the long ones.
type GeocodingConfig struct {
	BaseURL      string   `json:"base_url" yaml:"base_url" toml:"base_url"`
	ProbeSize    int      `json:"probe_size" yaml:"probe_size" toml:"probe_size"`
	ProbeTimeout Duration `json:"probe_timeout" yaml:"probe_timeout" toml:"probe_timeout"`
	ProbeDelay   Duration `json:"probe_delay" yaml:"probe_delay" toml:"probe_delay"`
	FullTimeout  Duration `json:"full_timeout" yaml:"full_timeout" toml:"full_timeout"`
	FullDelay    Duration `json:"full_delay" yaml:"full_delay" toml:"full_delay"`
}

// DefaultGeocodingConfig returns the Nominatim defaults: a 5-address probe
// with a 5s timeout and 0.5s inter-request delay, then 10s/1s for the rest
// of the batch.
func DefaultGeocodingConfig() GeocodingConfig {
	return GeocodingConfig{
		BaseURL:      "https://nominatim.openstreetmap.org/search",
		ProbeSize:    5,
		ProbeTimeout: Duration(5 * time.Second),
		ProbeDelay:   Duration(500 * time.Millisecond),
		FullTimeout:  Duration(10 * time.Second),
		FullDelay:    Duration(time.Second),
	}
}
