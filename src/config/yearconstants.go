package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrUnknownLimit is returned when a statutory limit name is not present in
// the loaded constants file.
var ErrUnknownLimit = errors.New("unknown statutory limit")

// YearConstants is an opaque lookup of statutory amounts by limit name and
// tax year, loaded from a JSON data file. A limit entry is either a flat
// number (same amount every year) or an object keyed by year string.
type YearConstants struct {
	limits map[string]interface{}
}

func LoadYearConstants(path string) (*YearConstants, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading yearly constants file %s: %w", path, err)
	}

	limits := make(map[string]interface{})
	if err := json.Unmarshal(raw, &limits); err != nil {
		return nil, fmt.Errorf("error parsing yearly constants file %s: %w", path, err)
	}
	return &YearConstants{limits: limits}, nil
}

// Limit returns the statutory amount for the named limit in the given year.
func (y *YearConstants) Limit(name string, year int) (float64, error) {
	entry, ok := y.limits[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownLimit, name)
	}

	switch v := entry.(type) {
	case float64:
		return v, nil
	case map[string]interface{}:
		amount, ok := v[strconv.Itoa(year)]
		if !ok {
			return 0, fmt.Errorf("%w: %s has no entry for year %d", ErrUnknownLimit, name, year)
		}
		num, ok := amount.(float64)
		if !ok {
			return 0, fmt.Errorf("%w: %s entry for year %d is not numeric", ErrUnknownLimit, name, year)
		}
		return num, nil
	default:
		return 0, fmt.Errorf("%w: %s entry has unsupported type", ErrUnknownLimit, name)
	}
}
