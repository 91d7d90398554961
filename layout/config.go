package layout

import (
	"math"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigMissing is returned when a required key is absent from the
	// configuration.
	ErrConfigMissing = errors.New("missing configuration value")
	// ErrConfigInvalid is returned when a key holds something other than a
	// usable non-negative integer.
	ErrConfigInvalid = errors.New("invalid configuration value")
)

// ConfigFileName is the name the layout configuration is looked up under.
const ConfigFileName = "config.yaml"

// Load reads a layout from the YAML file at path.
func Load(path string) (Layout, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Layout{}, errors.Wrapf(err, "reading layout config %q", path)
	}
	l, err := Parse(b)
	if err != nil {
		return Layout{}, errors.Wrapf(err, "parsing layout config %q", path)
	}
	glog.Infof("loaded layout from %s: %+v", path, l)
	return l, nil
}

// Parse decodes a YAML document holding the ten layout keys.
func Parse(b []byte) (Layout, error) {
	doc := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Layout{}, errors.Wrap(ErrConfigInvalid, err.Error())
	}

	var l Layout
	fields := []struct {
		key string
		dst *uint32
	}{
		{"x_step", &l.XStep},
		{"y_step", &l.YStep},
		{"north_start_x", &l.NorthStartX},
		{"north_start_y", &l.NorthStartY},
		{"east_start_x", &l.EastStartX},
		{"east_start_y", &l.EastStartY},
		{"south_start_x", &l.SouthStartX},
		{"south_start_y", &l.SouthStartY},
		{"west_start_x", &l.WestStartX},
		{"west_start_y", &l.WestStartY},
	}
	for _, f := range fields {
		v, err := readUint32(doc, f.key)
		if err != nil {
			return Layout{}, err
		}
		*f.dst = v
	}

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func readUint32(doc map[string]interface{}, key string) (uint32, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return 0, errors.Wrapf(ErrConfigMissing, "undefined value for %s", key)
	}

	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	case uint64:
		if v > math.MaxUint32 {
			return 0, errors.Wrapf(ErrConfigInvalid, "value for %s out of range: %d", key, v)
		}
		n = int64(v)
	default:
		return 0, errors.Wrapf(ErrConfigInvalid, "value for %s is not a proper number: %v", key, raw)
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, errors.Wrapf(ErrConfigInvalid, "value for %s out of range: %d", key, n)
	}
	return uint32(n), nil
}
