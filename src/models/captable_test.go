package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapTableIssueParStock(t *testing.T) {
	table := NewCapTable()
	table.AddClass(ClassCommon, 1000, 1, true)

	lot, err := table.Issue(ClassCommon, 100, 1000, 50)
	require.NoError(t, err)

	assert.Equal(t, 100.0, lot.Shares)
	assert.Equal(t, 1100.0, table.Outstanding())
	// Stated value 100 shares x $1 par; the rest net of costs is APIC.
	assert.Equal(t, 950.0, table.FMV())
}

func TestCapTableIssueNoParStock(t *testing.T) {
	table := NewCapTable()
	table.AddClass(ClassPreferred, 0, 0, false)

	_, err := table.Issue(ClassPreferred, 10, 500, 25)
	require.NoError(t, err)

	assert.Equal(t, 10.0, table.Outstanding())
	assert.Equal(t, 475.0, table.FMV())
}

func TestCapTableIssueUnknownClass(t *testing.T) {
	table := NewCapTable()
	_, err := table.Issue(ClassVoting, 10, 100, 0)
	assert.Error(t, err)
}

func TestCapTableRepurchaseMovesSharesToTreasury(t *testing.T) {
	table := NewCapTable()
	table.AddClass(ClassCommon, 0, 1, true)

	lot, err := table.Issue(ClassCommon, 100, 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, table.Outstanding())

	require.NoError(t, table.Repurchase(lot))
	assert.Equal(t, 0.0, table.Outstanding())
}
