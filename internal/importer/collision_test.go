// internal/importer/collision_test.go
package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollisionPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    CollisionPolicy
		wantErr bool
	}{
		{"", CollisionSuffix, false},
		{"suffix", CollisionSuffix, false},
		{"Skip", CollisionSkip, false},
		{" overwrite ", CollisionOverwrite, false},
		{"rename", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCollisionPolicy(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCollisionPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func touch(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
}

func TestClaims_Suffix(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "2014/2014-09-29/a.jpg")
	touch(t, root, "2014/2014-09-29/a_1.jpg")
	cl := newClaims(root, CollisionSuffix)

	c, err := cl.reserve("2014/2014-09-29/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, claim{Rel: "2014/2014-09-29/b.jpg"}, c)

	c, err = cl.reserve("2014/2014-09-29/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, claim{Rel: "2014/2014-09-29/b_1.jpg", Collided: true}, c, "claimed earlier in the run")

	c, err = cl.reserve("2014/2014-09-29/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "2014/2014-09-29/a_2.jpg", c.Rel, "skips names taken on disk")
	assert.True(t, c.Collided)
}

func TestClaims_Skip(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "unknown/a.jpg")
	cl := newClaims(root, CollisionSkip)

	c, err := cl.reserve("unknown/a.jpg")
	require.NoError(t, err)
	assert.True(t, c.Skip)
	assert.True(t, c.Collided)
}

func TestClaims_Overwrite(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "unknown/a.jpg")
	cl := newClaims(root, CollisionOverwrite)

	c, err := cl.reserve("unknown/a.jpg")
	require.NoError(t, err)
	assert.True(t, c.Replace)
	assert.Equal(t, "unknown/a.jpg", c.Rel)

	c, err = cl.reserve("unknown/a.jpg")
	require.NoError(t, err)
	assert.False(t, c.Replace, "entries of one run do not overwrite each other")
	assert.Equal(t, "unknown/a_1.jpg", c.Rel)
}

func TestClaims_NoExtension(t *testing.T) {
	cl := newClaims(t.TempDir(), CollisionSuffix)
	_, err := cl.reserve("unknown/README")
	require.NoError(t, err)
	c, err := cl.reserve("unknown/README")
	require.NoError(t, err)
	assert.Equal(t, "unknown/README_1", c.Rel)
}
