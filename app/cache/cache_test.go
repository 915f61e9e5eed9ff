package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCache_GetOrCompute_Memoizes(t *testing.T) {
	c := New[string]()

	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		val, err := c.GetOrCompute("key", compute)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if val != "value" {
			t.Errorf("Expected 'value', got %q", val)
		}
	}

	if calls != 1 {
		t.Errorf("Expected 1 computation, got %d", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", c.Len())
	}
}

func TestCache_GetOrCompute_ConcurrentSingleComputation(t *testing.T) {
	c := New[int]()

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	compute := func() (int, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			val, err := c.GetOrCompute("url", compute)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			results[idx] = val
		}(i)
	}

	// Wait until the first caller is inside compute, then let everyone
	// pile up behind it before releasing
	<-started
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected exactly 1 computation, got %d", got)
	}
	for i, val := range results {
		if val != 42 {
			t.Errorf("Caller %d got %d, expected 42", i, val)
		}
	}
}

func TestCache_GetOrCompute_RetriesAfterFailure(t *testing.T) {
	c := New[string]()

	calls := 0
	computeErr := errors.New("fetch failed")
	compute := func() (string, error) {
		calls++
		if calls == 1 {
			return "", computeErr
		}
		return "value", nil
	}

	// the first caller sees the failure, but the key is released
	if _, err := c.GetOrCompute("key", compute); !errors.Is(err, computeErr) {
		t.Errorf("Expected computeErr, got %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Failed computation must not stay cached, got %d entries", c.Len())
	}

	// the next caller retries and the success is memoized
	val, err := c.GetOrCompute("key", compute)
	if err != nil {
		t.Fatalf("Unexpected error on retry: %v", err)
	}
	if val != "value" {
		t.Errorf("Expected 'value' on retry, got %q", val)
	}

	if _, err := c.GetOrCompute("key", compute); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 computations (failure then success), got %d", calls)
	}
}

func TestCache_GetOrCompute_FailureSharedWithWaitingCohort(t *testing.T) {
	c := New[string]()

	computeErr := errors.New("fetch failed")
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	compute := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return "", computeErr
	}

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = c.GetOrCompute("url", compute)
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	// everyone waiting on the failed computation gets its error; the
	// computation still ran only once for the cohort
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected exactly 1 computation, got %d", got)
	}
	for i, err := range errs {
		if !errors.Is(err, computeErr) {
			t.Errorf("Caller %d expected computeErr, got %v", i, err)
		}
	}
}

func TestCache_GetOrCompute_IndependentKeys(t *testing.T) {
	c := New[string]()

	a, _ := c.GetOrCompute("a", func() (string, error) { return "A", nil })
	b, _ := c.GetOrCompute("b", func() (string, error) { return "B", nil })

	if a != "A" || b != "B" {
		t.Errorf("Expected independent values per key, got %q and %q", a, b)
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", c.Len())
	}
}
