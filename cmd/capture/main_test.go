package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/GestureNet/pkg/gesture"
)

func TestParseArgsAcceptsExactName(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a, label, err := parseArgs([]string{"Left Hard"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, gesture.LeftHard, label)
	assert.Equal(t, "Left Hard", a.Gesture)
	assert.Empty(t, stderr.String())

	_, label, err = parseArgs([]string{"--port", "-", " Middle "}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, gesture.Middle, label)
}

func TestParseArgsRejects(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"wrong case", []string{"left hard"}},
		{"missing", nil},
		{"two positionals", []string{"Left Hard", "Middle"}},
		{"unknown", []string{"Swipe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			_, _, err := parseArgs(tt.argv, &stdout, &stderr)
			require.Error(t, err)
			var out = stderr.String()
			assert.Contains(t, out, "Allowed gestures:")
			for _, name := range gesture.Names() {
				assert.Contains(t, out, `"`+name+`"`)
			}
		})
	}
}

const middleStream = `s1=0.1,s2=0.9,s3=0.1
garbage

s1=0.9,s2=0.9,s3=0.9
s1=0.05,s2=0.75,s3=0.2
s1=0.1,s2=0.8,s3=0.1
`

func TestRunReplaysStdin(t *testing.T) {
	var dir = t.TempDir()
	var logger = log.New(io.Discard, "", 0)
	var a = args{Gesture: "Middle", Port: "-", Quota: 2, Out: dir}

	require.NoError(t, run(a, gesture.Middle, strings.NewReader(middleStream), logger))

	var path = filepath.Join(dir, "middle.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"s1,s2,s3,gesture\n0.1000,0.9000,0.1000,Middle\n0.0500,0.7500,0.2000,Middle\n",
		string(data))

	// a second session appends without repeating the header
	a.Quota = 1
	require.NoError(t, run(a, gesture.Middle, strings.NewReader("s1=0.2,s2=0.7,s3=0.0\n"), logger))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "s1,s2,s3,gesture"))
	assert.True(t, strings.HasSuffix(string(data), "0.2000,0.7000,0.0000,Middle\n"))
}

func TestRunStreamEndsBeforeQuota(t *testing.T) {
	var dir = t.TempDir()
	var a = args{Gesture: "Middle", Port: "-", Quota: 5, Out: dir}

	var err = run(a, gesture.Middle, strings.NewReader(middleStream), log.New(io.Discard, "", 0))
	require.Error(t, err)

	data, readErr := os.ReadFile(filepath.Join(dir, "middle.csv"))
	require.NoError(t, readErr)
	assert.Equal(t, 4, strings.Count(string(data), "\n"), "header plus the three matching samples")
}

func TestRunOutputDirMissing(t *testing.T) {
	var a = args{Gesture: "Middle", Port: "-", Quota: 1, Out: filepath.Join(t.TempDir(), "missing")}
	var err = run(a, gesture.Middle, strings.NewReader(middleStream), log.New(io.Discard, "", 0))
	assert.Error(t, err)
}
