package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPrintsCallValue(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{}, &stdout, &stderr), stderr.String())
	assert.Equal(t, "Call option value is: 2.6119\n", stdout.String())
}

func TestRunVerboseCrossChecks(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"--verbose"}, &stdout, &stderr), stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Gauss-Legendre (200 points): 2.61190")
	assert.Contains(t, out, "Black-Scholes closed form: 2.611902")
	assert.Contains(t, out, "Simpson evaluations: 1025\n")
	assert.Contains(t, stderr.String(), `"msg":"integrated"`)
}

func TestRunInvalidParameters(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"--vol", "0"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "invalid call parameters")
}

func TestRunIterationLimit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"--max-iterations", "3"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "max number of iterations reached")
}
