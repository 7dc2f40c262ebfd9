package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConstants(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "constants.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestYearConstantsLookups(t *testing.T) {
	path := writeConstants(t, `{
		"sect179_max": {"2021": 1050000, "2022": 1080000},
		"accumulated_earnings_tax_credit": 250000
	}`)
	constants, err := LoadYearConstants(path)
	require.NoError(t, err)

	amount, err := constants.Limit("sect179_max", 2021)
	require.NoError(t, err)
	assert.Equal(t, 1050000.0, amount)

	amount, err = constants.Limit("sect179_max", 2022)
	require.NoError(t, err)
	assert.Equal(t, 1080000.0, amount)

	// Flat entries apply regardless of year.
	amount, err = constants.Limit("accumulated_earnings_tax_credit", 1999)
	require.NoError(t, err)
	assert.Equal(t, 250000.0, amount)
}

func TestYearConstantsUnknownLimit(t *testing.T) {
	path := writeConstants(t, `{"sect179_max": {"2021": 1050000}}`)
	constants, err := LoadYearConstants(path)
	require.NoError(t, err)

	_, err = constants.Limit("no_such_limit", 2021)
	assert.ErrorIs(t, err, ErrUnknownLimit)

	_, err = constants.Limit("sect179_max", 1980)
	assert.ErrorIs(t, err, ErrUnknownLimit)
}

func TestLoadYearConstantsErrors(t *testing.T) {
	_, err := LoadYearConstants(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConstants(t, `not json`)
	_, err = LoadYearConstants(path)
	assert.Error(t, err)
}
