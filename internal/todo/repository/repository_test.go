package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertSingleDeleteWins deletes id from n goroutines at once. Exactly one
// call may report the row and none may fail.
func assertSingleDeleteWins(t *testing.T, repo TodoRepository, id string, n int) {
	t.Helper()

	var (
		wg      sync.WaitGroup
		total   atomic.Int64
		deleted atomic.Int64
		start   = make(chan struct{})
		errs    = make([]error, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			res, err := repo.DeleteByID(context.Background(), id)
			errs[i] = err
			total.Add(res.RowsAffected)
			if res.Deleted != nil {
				deleted.Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, total.Load())
	assert.EqualValues(t, 1, deleted.Load())
}
