package dbutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinalizeRebindsPlaceholders(t *testing.T) {
	query, args := Finalize("SELECT id FROM users WHERE email=?", []interface{}{"a@example.com"})
	require.Equal(t, "SELECT id FROM users WHERE email=$1", query)
	require.Equal(t, []interface{}{"a@example.com"}, args)
}

func TestFinalizeRewritesLimit(t *testing.T) {
	query, args := Finalize("SELECT id FROM notes WHERE user_id=? ORDER BY ctime DESC LIMIT ?,?", []interface{}{"u1", 0, 10})
	require.Equal(t, "SELECT id FROM notes WHERE user_id=$1 ORDER BY ctime DESC LIMIT $2 OFFSET $3", query)
	require.Equal(t, []interface{}{"u1", 10, 0}, args)
}
