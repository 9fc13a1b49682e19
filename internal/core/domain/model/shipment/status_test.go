package shipment_test

import (
	"testing"

	"timberops/internal/core/domain/model/shipment"
	"timberops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	valid := []shipment.Status{
		shipment.Draft, shipment.Pending, shipment.Accepted, shipment.Completed, shipment.Rejected,
	}
	for _, s := range valid {
		require.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, shipment.Unknown.Validate())
	require.Error(t, shipment.Status(42).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "draft", shipment.Draft.String())
	assert.Equal(t, "pending", shipment.Pending.String())
	assert.Equal(t, "accepted", shipment.Accepted.String())
	assert.Equal(t, "completed", shipment.Completed.String())
	assert.Equal(t, "rejected", shipment.Rejected.String())
	assert.Equal(t, "Unknown", shipment.Status(42).String())
}

func TestStatus_Submit(t *testing.T) {
	t.Run("from_draft", func(t *testing.T) {
		next, err := shipment.Draft.Submit()

		require.NoError(t, err)
		assert.Equal(t, shipment.Pending, next)
	})

	t.Run("not_from_other_states", func(t *testing.T) {
		for _, s := range []shipment.Status{shipment.Pending, shipment.Completed, shipment.Rejected, shipment.Unknown} {
			_, err := s.Submit()
			require.ErrorIs(t, err, errs.ErrNotDraft, s.String())
		}
	})
}

func TestStatus_CancelSubmission(t *testing.T) {
	next, err := shipment.Pending.CancelSubmission()

	require.NoError(t, err)
	assert.Equal(t, shipment.Draft, next)

	_, err = shipment.Draft.CancelSubmission()
	require.ErrorIs(t, err, errs.ErrNotPending)
}

func TestStatus_Accept(t *testing.T) {
	t.Run("jumps_to_completed", func(t *testing.T) {
		next, err := shipment.Pending.Accept()

		require.NoError(t, err)
		assert.Equal(t, shipment.Completed, next)
	})

	t.Run("not_from_other_states", func(t *testing.T) {
		for _, s := range []shipment.Status{shipment.Draft, shipment.Completed, shipment.Rejected} {
			_, err := s.Accept()
			require.ErrorIs(t, err, errs.ErrNotPending, s.String())
		}
	})
}

func TestStatus_Reject(t *testing.T) {
	next, err := shipment.Pending.Reject()

	require.NoError(t, err)
	assert.Equal(t, shipment.Rejected, next)

	_, err = shipment.Rejected.Reject()
	require.ErrorIs(t, err, errs.ErrNotPending)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, shipment.Completed.IsTerminal())
	assert.True(t, shipment.Rejected.IsTerminal())
	assert.False(t, shipment.Draft.IsTerminal())
	assert.False(t, shipment.Pending.IsTerminal())
	assert.False(t, shipment.Accepted.IsTerminal())
}
