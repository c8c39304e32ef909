package canon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestUnionFind(t *testing.T) {
	u := NewUnionFind()

	assert.Equal(t, "a", u.Find("a"))
	assert.False(t, u.Same("a", "b"))

	u.Union("a", "b")
	u.Union("c", "d")
	u.Union("b", "d") // d's class joins a's class

	assert.Equal(t, "a", u.Find("d"))
	assert.Equal(t, "a", u.Find("c"))
	assert.True(t, u.Same("b", "c"))

	u.Union("a", "a")
	assert.Equal(t, "a", u.Find("a"))

	want := map[string]string{"b": "a", "c": "a", "d": "a"}
	if diff := cmp.Diff(want, u.Renames()); diff != "" {
		t.Errorf("Renames() mismatch (-want +got):\n%s", diff)
	}
}
