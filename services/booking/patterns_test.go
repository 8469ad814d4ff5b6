package booking

import (
	"testing"

	"tutorly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPattern(t *testing.T) {
	t.Run("Accepts Up To Four Patterns", func(t *testing.T) {
		session := &models.BookingSession{}

		starts := []string{"08:00", "10:00", "12:00", "14:00"}
		for i, start := range starts {
			_, err := appendPattern(session, i+1, start, "15:00")
			require.NoError(t, err)
		}
		assert.Len(t, session.Patterns, 4)
	})

	t.Run("Rejects Fifth Pattern And Keeps First Four", func(t *testing.T) {
		session := &models.BookingSession{}
		for i := 0; i < 4; i++ {
			_, err := appendPattern(session, i, "10:00", "11:00")
			require.NoError(t, err)
		}
		before := append([]models.SlotPattern(nil), session.Patterns...)

		_, err := appendPattern(session, 5, "10:00", "11:00")

		var workflowErr *WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, "capacityExceeded", workflowErr.Code)
		assert.Equal(t, before, session.Patterns)
	})

	t.Run("Allows Same Day With Different Start Times", func(t *testing.T) {
		session := &models.BookingSession{}
		_, err := appendPattern(session, 5, "10:00", "11:00")
		require.NoError(t, err)
		_, err = appendPattern(session, 5, "16:00", "17:00")
		require.NoError(t, err)

		assert.Len(t, session.Patterns, 2)
	})

	t.Run("Rejects Duplicate Day And Start", func(t *testing.T) {
		session := &models.BookingSession{}
		_, err := appendPattern(session, 5, "10:00", "11:00")
		require.NoError(t, err)

		_, err = appendPattern(session, 5, "10:00", "12:00")
		var workflowErr *WorkflowError
		require.ErrorAs(t, err, &workflowErr)
		assert.Equal(t, "overlappingPattern", workflowErr.Code)
		assert.Contains(t, err.Error(), "Friday")
		assert.Len(t, session.Patterns, 1)
	})

	t.Run("Validates Inputs", func(t *testing.T) {
		session := &models.BookingSession{}

		_, err := appendPattern(session, 7, "10:00", "11:00")
		assert.Error(t, err, "day of week out of range")

		_, err = appendPattern(session, 1, "25:99", "11:00")
		assert.Error(t, err, "bad start time")

		_, err = appendPattern(session, 1, "11:00", "10:00")
		assert.Error(t, err, "end before start")

		assert.Empty(t, session.Patterns)
	})
}

func TestDropPattern(t *testing.T) {
	session := &models.BookingSession{}
	p, err := appendPattern(session, 2, "09:00", "10:00")
	require.NoError(t, err)

	dropPattern(session, "no-such-id")
	assert.Len(t, session.Patterns, 1, "removing an absent id is a no-op")

	dropPattern(session, p.ID)
	assert.Empty(t, session.Patterns)
}
