package fetch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/tabplot/internal/model"
)

func waitFinished(t *testing.T, svc *Service, id string) *model.FetchTask {
	t.Helper()

	var task *model.FetchTask
	require.Eventually(t, func() bool {
		var ok bool
		task, ok = svc.GetTask(id)
		return ok && task.Status.IsFinished()
	}, 5*time.Second, 10*time.Millisecond)
	return task
}

func TestNewService(t *testing.T) {
	service := NewService(2)

	if service.maxParallel != 2 {
		t.Errorf("Expected maxParallel to be 2, got %d", service.maxParallel)
	}

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}

	if NewService(0).maxParallel != MinParallel {
		t.Error("maxParallel should be clamped to the minimum")
	}
	if NewService(50).maxParallel != MaxParallel {
		t.Error("maxParallel should be clamped to the maximum")
	}
}

func TestAddTaskCompletesThenCaches(t *testing.T) {
	srv, hits := countingServer(t, http.StatusOK, testBody)
	svc := newTestService()
	dir := t.TempDir()

	task, err := svc.AddTask(dir, srv.URL+"/t.txt")
	require.NoError(t, err)
	assert.Equal(t, "t.txt", task.FileName)

	done := waitFinished(t, svc, task.ID)
	assert.Equal(t, model.TaskStatusCompleted, done.Status)
	assert.Equal(t, 100, done.Percent)

	again, err := svc.AddTask(dir, srv.URL+"/t.txt")
	require.NoError(t, err)
	cached := waitFinished(t, svc, again.ID)
	assert.Equal(t, model.TaskStatusCached, cached.Status)

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestAddTaskRejectsDuplicateDestination(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(testBody))
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	svc := newTestService()
	dir := t.TempDir()

	_, err := svc.AddTask(dir, srv.URL+"/same.txt")
	require.NoError(t, err)

	_, err = svc.AddTask(dir, srv.URL+"/other/same.txt")
	require.ErrorIs(t, err, ErrTaskExists)

	_, err = svc.AddTask(dir, srv.URL+"/different.txt")
	require.NoError(t, err)
}

func TestAddTaskInvalidURL(t *testing.T) {
	_, err := newTestService().AddTask(t.TempDir(), "not a url")
	require.ErrorIs(t, err, ErrInvalidURL)
}

func TestAddTaskFailureIsRecorded(t *testing.T) {
	srv, _ := countingServer(t, http.StatusForbidden, "no")
	svc := newTestService()

	task, err := svc.AddTask(t.TempDir(), srv.URL+"/secret.txt")
	require.NoError(t, err)

	done := waitFinished(t, svc, task.ID)
	assert.Equal(t, model.TaskStatusError, done.Status)
	assert.Contains(t, done.LastError, "403")
}

func TestParallelLimitIsRespected(t *testing.T) {
	var active, peak int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		_, _ = w.Write([]byte(testBody))
	}))
	t.Cleanup(srv.Close)

	svc := NewService(1, WithRetryMax(0))
	dir := t.TempDir()

	var ids []string
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		task, err := svc.AddTask(dir, srv.URL+"/"+name)
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	for _, id := range ids {
		assert.Equal(t, model.TaskStatusCompleted, waitFinished(t, svc, id).Status)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestGetAllTasksOrdered(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, testBody)
	svc := newTestService()
	dir := t.TempDir()

	first, err := svc.AddTask(dir, srv.URL+"/1.txt")
	require.NoError(t, err)
	second, err := svc.AddTask(dir, srv.URL+"/2.txt")
	require.NoError(t, err)

	tasks := svc.GetAllTasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)
}

func TestRemoveTask(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, testBody)
	svc := newTestService()

	task, err := svc.AddTask(t.TempDir(), srv.URL+"/r.txt")
	require.NoError(t, err)
	waitFinished(t, svc, task.ID)

	require.NoError(t, svc.RemoveTask(task.ID))
	_, ok := svc.GetTask(task.ID)
	assert.False(t, ok)

	require.ErrorIs(t, svc.RemoveTask(task.ID), ErrTaskNotFound)
}

func TestUpdateCallback(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, testBody)
	svc := newTestService()

	var mu sync.Mutex
	var statuses []model.TaskStatus
	svc.SetUpdateCallback(func(task *model.FetchTask) {
		mu.Lock()
		statuses = append(statuses, task.Status)
		mu.Unlock()
	})

	task, err := svc.AddTask(t.TempDir(), srv.URL+"/cb.txt")
	require.NoError(t, err)
	waitFinished(t, svc, task.ID)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(statuses) > 0 && statuses[len(statuses)-1] == model.TaskStatusCompleted
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, model.TaskStatusFetching, statuses[0])
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}

	if !strings.HasPrefix(id1, "task-") {
		t.Errorf("Expected ID to start with 'task-', got: %s", id1)
	}

	// task- + 36 chars for UUID
	if len(id1) != len("task-")+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len("task-")+36, len(id1), id1)
	}
}

func TestRemoveRunningTaskCancelsQuietly(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	svc := newTestService()
	var finished int32
	svc.SetUpdateCallback(func(task *model.FetchTask) {
		if task.Status.IsFinished() {
			atomic.AddInt32(&finished, 1)
		}
	})

	task, err := svc.AddTask(t.TempDir(), srv.URL+"/slow.txt")
	require.NoError(t, err)
	require.NoError(t, svc.RemoveTask(task.ID))

	require.Eventually(t, func() bool {
		svc.tasksMutex.RLock()
		defer svc.tasksMutex.RUnlock()
		return svc.activeCount == 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&finished))
	assert.Empty(t, svc.GetAllTasks())
}
