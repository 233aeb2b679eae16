package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstraintClassification(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insert := `INSERT INTO case_studies (id, country, policy_name, policy_type, data_quality, detail)
		VALUES (?, 'EU', 'EU AI Act', 'comprehensive', ?, '{}')`

	_, err := db.ExecContext(ctx, insert, "eu", "high")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "eu", "high")
	require.True(t, isUniqueViolation(err), "duplicate id: %v", err)
	require.False(t, isCheckViolation(err))

	_, err = db.ExecContext(ctx, insert, "uk", "excellent")
	require.True(t, isCheckViolation(err), "bad quality: %v", err)
	require.False(t, isUniqueViolation(err))

	require.False(t, isCheckViolation(errors.New("CHECK constraint failed")))
	require.False(t, isUniqueViolation(nil))
}
