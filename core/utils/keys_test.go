package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "t1/a", "t1/a/"},
		{"LeadingSlash", "/t1/a", "/t1/a/"},
		{"AlreadyDir", "t1/a/", "t1/a/"},
		{"Empty", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DirKey(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, DirKey(got), "DirKey must be idempotent")
		})
	}
}

func TestIsDirKey(t *testing.T) {
	assert.True(t, IsDirKey("a/"))
	assert.False(t, IsDirKey("a"))
	assert.False(t, IsDirKey(""))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Docker.Engines.pdb", BaseName("/t1/Docker.Engines.pdb"))
	assert.Equal(t, "a", BaseName("t1/a/"))
	assert.Equal(t, "file", BaseName("file"))
	assert.Equal(t, "", BaseName("/"))
}

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "t1/a/README.txt", JoinKey("t1/a", "README.txt"))
	assert.Equal(t, "t1/a/README.txt", JoinKey("t1/a/", "/README.txt"))
}
