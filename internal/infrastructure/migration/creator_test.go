package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Daily Summaries")
	require.NoError(t, err)

	assert.FileExists(t, mf.UpPath)
	assert.FileExists(t, mf.DownPath)
	assert.Contains(t, mf.UpPath, "add_daily_summaries.up.sql")
	assert.Contains(t, mf.DownPath, "add_daily_summaries.down.sql")

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Daily Summaries")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Daily Summaries", "add_daily_summaries"},
		{"  fix-index!! ", "fix_index"},
		{"v2", "v2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in))
	}
}
