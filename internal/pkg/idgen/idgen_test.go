package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	id := New(PrefixJob)
	assert.Len(t, id, len("job_")+12)
	assert.True(t, HasPrefix(id, PrefixJob))
	assert.False(t, HasPrefix(id, PrefixMatch))
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New(PrefixMatch)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
