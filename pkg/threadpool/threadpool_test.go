package threadpool

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositive(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
	_, err = New(-1)
	require.Error(t, err)
}

func TestSubmitAndWaitRunsAllTasks(t *testing.T) {
	p, err := New(4)
	require.NoError(t, err)
	defer p.Close()

	var count int64
	tasks := make([]*Task, 100)
	for i := range tasks {
		tasks[i] = &Task{Run: func() error {
			atomic.AddInt64(&count, 1)
			return nil
		}}
		p.Submit(tasks[i])
	}
	p.Wait()

	require.Equal(t, int64(100), count)
}

func TestWaitBlocksUntilTrulyIdle(t *testing.T) {
	p, err := New(2)
	require.NoError(t, err)
	defer p.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	p.Submit(&Task{Run: func() error {
		close(started)
		<-release
		return nil
	}})

	<-started
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before the in-flight task finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait never returned after task finished")
	}
}

func TestTaskErrorsAreRecorded(t *testing.T) {
	p, err := New(2)
	require.NoError(t, err)
	defer p.Close()

	task := &Task{Run: func() error { return fmt.Errorf("boom") }}
	p.Submit(task)
	p.Wait()

	require.Error(t, task.Err)
	require.Equal(t, "boom", task.Err.Error())
}

func TestCloseReturnsWithTasksStillQueued(t *testing.T) {
	p, err := New(1)
	require.NoError(t, err)

	var ran int64
	block := make(chan struct{})
	p.Submit(&Task{Run: func() error {
		<-block
		return nil
	}})
	// This second task sits queued behind the blocked first task.
	p.Submit(&Task{Run: func() error {
		atomic.AddInt64(&ran, 1)
		return nil
	}})

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(block)
	}()
	p.Close()

	// Close is permitted to drop queued-but-unstarted tasks (spec.md §4.9);
	// it must still return once the in-flight worker has drained.
	_ = atomic.LoadInt64(&ran)
}

func TestFIFOOrdering(t *testing.T) {
	p, err := New(1)
	require.NoError(t, err)
	defer p.Close()

	var order []int
	for i := 0; i < 10; i++ {
		i := i
		p.Submit(&Task{Run: func() error {
			order = append(order, i)
			return nil
		}})
	}
	p.Wait()

	for i := 0; i < 10; i++ {
		require.Equal(t, i, order[i])
	}
}
