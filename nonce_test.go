package oauth1

import (
	"encoding/base64"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoncerFunc(t *testing.T) {
	noncer := NoncerFunc(func() string { return "nn" })
	assert.Equal(t, "nn", noncer.Nonce())
}

func TestNewRandomNoncer(t *testing.T) {
	noncer := NewRandomNoncer()

	t.Run("Format", func(t *testing.T) {
		nonce := noncer.Nonce()
		assert.Len(t, nonce, 24)

		raw, err := base64.StdEncoding.DecodeString(nonce)
		require.NoError(t, err)
		assert.Len(t, raw, 16)
	})

	t.Run("Unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			nonce := noncer.Nonce()
			require.False(t, seen[nonce], "duplicated nonce: %s", nonce)
			seen[nonce] = true
		}
	})

	t.Run("Concurrent", func(t *testing.T) {
		const goroutines = 10
		const each = 200

		var mu sync.Mutex
		seen := make(map[string]bool, goroutines*each)

		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < each; j++ {
					nonce := noncer.Nonce()

					mu.Lock()
					seen[nonce] = true
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Len(t, seen, goroutines*each)
	})
}
