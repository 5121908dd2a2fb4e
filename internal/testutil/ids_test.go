package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequentialIDs(t *testing.T) {
	gen := NewSequentialIDs("")
	assert.Equal(t, "stmt-0001", gen.Generate())
	assert.Equal(t, "stmt-0002", gen.Generate())

	custom := NewSequentialIDs("q")
	assert.Equal(t, "q-0001", custom.Generate())
}

func TestSequentialIDs_Concurrent(t *testing.T) {
	gen := NewSequentialIDs("")
	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(gen.Generate(), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
	assert.Equal(t, "stmt-0051", gen.Generate())
}
