package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrintsParameters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  sigmas: [0.01]\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--scenario", path}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "reference date is : October 16th, 2007\n")
	assert.Contains(t, out, "a      = 0.03\n")
	assert.Contains(t, out, "b      = 0\n")
	assert.Contains(t, out, "sigma  = 2.22045e-16\n")
	assert.Contains(t, out, "lambda = 0\n")
	assert.Contains(t, out, "QL HullWhite price/yld (%) 95.6")
	assert.Contains(t, out, "Bloomberg price/yld (%)    95.68 / 5.66\n")
	assert.NotContains(t, out, "Vasicek")
}

func TestRunInvalidScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("evaluation_date: not-a-date\n"), 0o644))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"--scenario", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "evaluation_date")
}
