package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineTransactionType_SameState(t *testing.T) {
	txType, err := DetermineTransactionType("Karnataka", "karnataka")
	require.NoError(t, err)
	assert.Equal(t, IntraState, txType)
}

func TestDetermineTransactionType_DifferentStates(t *testing.T) {
	txType, err := DetermineTransactionType("Karnataka", "Maharashtra")
	require.NoError(t, err)
	assert.Equal(t, InterState, txType)
}

func TestDetermineTransactionType_NormalizesCaseAndWhitespace(t *testing.T) {
	txType, err := DetermineTransactionType("  TAMIL NADU ", "tamil nadu")
	require.NoError(t, err)
	assert.Equal(t, IntraState, txType)
}

func TestDetermineTransactionType_EmptyStateIsAnError(t *testing.T) {
	// Two empty names would otherwise compare equal and report
	// intra-state for an order with no usable address.
	_, err := DetermineTransactionType("", "")
	assert.ErrorIs(t, err, ErrUnknownState)

	_, err = DetermineTransactionType("Karnataka", "   ")
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestStateCode(t *testing.T) {
	assert.Equal(t, "29", StateCode("Karnataka"))
	assert.Equal(t, "27", StateCode(" maharashtra "))
	assert.Equal(t, "07", StateCode("DELHI"))
	assert.Equal(t, UnknownStateCode, StateCode("Atlantis"))
	assert.Equal(t, UnknownStateCode, StateCode(""))
}
