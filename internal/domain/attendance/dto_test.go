package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftclock/attendance-backend-go/internal/pkg/validator"
)

func TestClockRequestValidate(t *testing.T) {
	t.Run("empty source defaults to webapp", func(t *testing.T) {
		req := ClockRequest{}
		require.NoError(t, req.Validate())
		assert.Equal(t, string(OperationWebApp), req.Source)
	})

	t.Run("known sources pass", func(t *testing.T) {
		for _, source := range OperationTypeValues {
			req := ClockRequest{Source: source}
			assert.NoError(t, req.Validate())
		}
	})

	t.Run("unknown source rejected", func(t *testing.T) {
		req := ClockRequest{Source: "carrier-pigeon"}
		err := req.Validate()
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "source", verrs[0].Field)
	})
}

func TestListFilterValidate(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		f := ListFilter{}
		require.NoError(t, f.Validate())
		assert.Equal(t, 20, f.Limit)
		assert.Equal(t, "date", f.SortBy)
		assert.Equal(t, "desc", f.SortOrder)
	})

	t.Run("limit bounds", func(t *testing.T) {
		f := ListFilter{Limit: 101}
		assert.Error(t, f.Validate())

		f = ListFilter{Limit: -1}
		assert.Error(t, f.Validate())

		f = ListFilter{Limit: 100}
		assert.NoError(t, f.Validate())
	})

	t.Run("negative offset rejected", func(t *testing.T) {
		f := ListFilter{Offset: -1}
		assert.Error(t, f.Validate())
	})

	t.Run("date range order", func(t *testing.T) {
		start, end := "2025-03-10", "2025-03-01"
		f := ListFilter{StartDate: &start, EndDate: &end}
		err := f.Validate()
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "end_date", verrs[0].Field)
	})

	t.Run("malformed dates rejected", func(t *testing.T) {
		bad := "10-03-2025"
		f := ListFilter{StartDate: &bad}
		assert.Error(t, f.Validate())
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		status := "NAPPING"
		f := ListFilter{Status: &status}
		assert.Error(t, f.Validate())
	})

	t.Run("unknown sort column rejected", func(t *testing.T) {
		f := ListFilter{SortBy: "role"}
		assert.Error(t, f.Validate())
	})
}
