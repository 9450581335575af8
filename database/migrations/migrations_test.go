package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bistrobuzz/bistro/pkg/migration"
)

func TestRegistered(t *testing.T) {
	entries := migration.Registered()
	assert.Len(t, entries, 4)

	var unique []string
	for _, e := range entries {
		if ix, ok := e.Migration.(index); ok && ix.unique {
			unique = append(unique, ix.collection+"."+ix.field)
		}
		assert.True(t, strings.HasPrefix(e.Name, "2024"), e.Name)
	}
	assert.Equal(t, []string{"users.email"}, unique)
}
