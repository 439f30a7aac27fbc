package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// requireFieldError fails unless err carries a translated error for field with the given detail.
func requireFieldError(t *testing.T, v *Validator, err error, field, detail string) {
	t.Helper()
	require.Error(t, err)

	for _, ve := range v.ParseValidationErrors(err) {
		if ve.Field == field {
			require.Equal(t, detail, ve.Detail)
			return
		}
	}
	require.Failf(t, "missing validation error", "no error for field %s in %v", field, err)
}
