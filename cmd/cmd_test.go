package cmd

import (
	"bytes"
	"errors"
	"testing"

	"object-storage/feature/bucketfs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanMoves(t *testing.T) {
	tests := []struct {
		name string
		srcs []string
		dest string
		want []bucketfs.Move
	}{
		{"Rename", []string{"a/x.txt"}, "b/y.txt", []bucketfs.Move{{Src: "a/x.txt", Dest: "b/y.txt"}}},
		{"Into Directory", []string{"a/x.txt"}, "b/", []bucketfs.Move{{Src: "a/x.txt", Dest: "b/x.txt"}}},
		{"Many", []string{"a/x", "c/y"}, "d", []bucketfs.Move{{Src: "a/x", Dest: "d/x"}, {Src: "c/y", Dest: "d/y"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planMoves(tt.srcs, tt.dest))
		})
	}
}

func TestReportResults(t *testing.T) {
	results := []bucketfs.Result{
		{Path: "a/", Status: bucketfs.StatusOK},
		{Path: "b", Target: "c", Status: bucketfs.StatusFailed, Error: "boom", Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	err := reportResults(&buf, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, buf.String(), "ok")
	assert.Contains(t, buf.String(), "b -> c: boom")

	buf.Reset()
	assert.NoError(t, reportResults(&buf, results[:1]))
}

func TestReportResultsJSON(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	var buf bytes.Buffer
	require.NoError(t, reportResults(&buf, []bucketfs.Result{{Path: "a", Status: bucketfs.StatusOK}}))
	assert.JSONEq(t, `[{"path":"a","status":"ok"}]`, buf.String())
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"exists", "ls", "du", "mkdir", "rm", "rmdir", "cp", "mv", "put", "get", "start"} {
		assert.True(t, names[want], want)
	}
}
