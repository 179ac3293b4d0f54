package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLogger_StdoutOnly(t *testing.T) {
	var buf bytes.Buffer
	rl, err := NewRunLogger(&buf, "", "verify")
	require.NoError(t, err)
	defer rl.Close()

	rl.LogInfo("found %d pages", 3)
	rl.LogError("boom")

	var report bytes.Buffer
	assert.Same(t, &report, rl.Tee(&report))
	assert.Empty(t, rl.Path())
	assert.Contains(t, buf.String(), "[INFO] found 3 pages")
	assert.Contains(t, buf.String(), "[ERROR] boom")
}

func TestRunLogger_File(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	rl, err := NewRunLogger(&buf, dir, "Link Check")
	require.NoError(t, err)

	var report bytes.Buffer
	rl.LogDebug("visiting %s", "/about")
	fmt.Fprintln(rl.Tee(&report), "report line")
	require.NoError(t, rl.Close())

	path := rl.Path()
	assert.Equal(t, filepath.Join(dir, "link_check"), filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "link_check_"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] visiting /about")
	assert.Contains(t, string(data), "report line")
	assert.Equal(t, "report line\n", report.String())
	assert.NotContains(t, buf.String(), "report line")
}
