package cache_test

import (
	"testing"

	"github.com/hkmoon/bookcheck/internal/cache"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Run("joins operation and parameters in order", func(t *testing.T) {
		assert.Equal(t, "check_library:9788936434120:111001",
			cache.Key("check_library", "9788936434120", "111001"))
	})

	t.Run("operation only", func(t *testing.T) {
		assert.Equal(t, "libraries", cache.Key("libraries"))
	})

	t.Run("distinct parameter order yields distinct keys", func(t *testing.T) {
		assert.NotEqual(t, cache.Key("op", "a", "b"), cache.Key("op", "b", "a"))
	})
}
