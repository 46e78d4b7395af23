package fetch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/ytget/tabplot/internal/logging"
	"github.com/ytget/tabplot/internal/model"
)

// Parallelism bounds
const (
	MinParallel = 1
	MaxParallel = 10
)

// Service handles fetch operations
type Service struct {
	tasks       map[string]*model.FetchTask
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	maxParallel int
	activeCount int
	client      *retryablehttp.Client
	log         *logrus.Entry
	onUpdate    func(*model.FetchTask) // callback for UI updates
}

// NewService creates a new fetch service
func NewService(maxParallel int, opts ...Option) *Service {
	log := logging.For("fetch")
	return &Service{
		tasks:       make(map[string]*model.FetchTask),
		cancels:     make(map[string]context.CancelFunc),
		maxParallel: clampParallel(maxParallel),
		client:      newRetryClient(log, opts...),
		log:         log,
	}
}

// SetUpdateCallback sets the callback function for task updates. The callback
// receives a snapshot and may be invoked from worker goroutines.
func (s *Service) SetUpdateCallback(callback func(*model.FetchTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetMaxParallel sets the maximum number of parallel fetches
func (s *Service) SetMaxParallel(max int) {
	s.tasksMutex.Lock()
	s.maxParallel = clampParallel(max)
	s.tasksMutex.Unlock()

	s.startPendingTasks()
}

// AddTask queues a fetch of rawURL into dir
func (s *Service) AddTask(dir, rawURL string) (*model.FetchTask, error) {
	name, err := FileNameFromURL(rawURL)
	if err != nil {
		return nil, err
	}
	target, err := TargetPath(dir, rawURL)
	if err != nil {
		return nil, err
	}

	s.tasksMutex.Lock()

	// Same destination may only be fetched by one unfinished task
	for _, task := range s.tasks {
		if task.OutputPath == target && !task.Status.IsFinished() {
			s.tasksMutex.Unlock()
			return nil, fmt.Errorf("%w for %s", ErrTaskExists, target)
		}
	}

	task := &model.FetchTask{
		ID:         generateTaskID(),
		URL:        rawURL,
		Dir:        dir,
		FileName:   name,
		OutputPath: target,
		Status:     model.TaskStatusPending,
		TotalBytes: -1,
		StartedAt:  time.Now(),
	}
	s.tasks[task.ID] = task
	snapshot := *task
	s.tasksMutex.Unlock()

	s.log.WithFields(logrus.Fields{"task_id": task.ID, "url": rawURL}).Debug("task queued")
	s.startPendingTasks()

	return &snapshot, nil
}

// GetTask returns a snapshot of the task with the given ID
func (s *Service) GetTask(id string) (*model.FetchTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// GetAllTasks returns snapshots of all tasks ordered by creation time
func (s *Service) GetAllTasks() []*model.FetchTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.FetchTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		snapshot := *task
		tasks = append(tasks, &snapshot)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})
	return tasks
}

// RemoveTask forgets a task, cancelling its transfer if it is running
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	if _, exists := s.tasks[id]; !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if cancel, ok := s.cancels[id]; ok {
		cancel()
		delete(s.cancels, id)
	}
	delete(s.tasks, id)
	return nil
}

// startPendingTasks starts queued tasks, oldest first, while capacity allows
func (s *Service) startPendingTasks() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	var pending []*model.FetchTask
	for _, task := range s.tasks {
		if task.Status == model.TaskStatusPending {
			pending = append(pending, task)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].StartedAt.Before(pending[j].StartedAt)
	})

	for _, task := range pending {
		if s.activeCount >= s.maxParallel {
			return
		}
		ctx, cancel := context.WithCancel(context.Background())
		s.cancels[task.ID] = cancel
		s.activeCount++
		task.Status = model.TaskStatusFetching
		go s.runTask(ctx, task)
	}
}

// runTask performs the transfer for a task and records the outcome
func (s *Service) runTask(ctx context.Context, task *model.FetchTask) {
	s.notifyUpdate(task)

	defer func() {
		s.tasksMutex.Lock()
		s.activeCount--
		if cancel, ok := s.cancels[task.ID]; ok {
			cancel()
			delete(s.cancels, task.ID)
		}
		s.tasksMutex.Unlock()

		s.startPendingTasks()
	}()

	result, err := s.DownloadFile(ctx, task.Dir, task.URL, func(done, total int64) {
		s.tasksMutex.Lock()
		task.SetProgress(done, total)
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
	})

	s.tasksMutex.Lock()
	switch {
	case err != nil:
		task.Status = model.TaskStatusError
		if errors.Is(err, context.Canceled) {
			task.LastError = "cancelled"
		} else {
			task.LastError = err.Error()
		}
	case result.Cached:
		task.Status = model.TaskStatusCached
		task.Progress = 1.0
		task.Percent = 100
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
		task.BytesDone = result.Bytes
	}
	task.FinishedAt = time.Now()
	_, known := s.tasks[task.ID]
	s.tasksMutex.Unlock()

	if !known {
		// removed while running
		return
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{"task_id": task.ID, "url": task.URL}).WithError(err).Warn("fetch failed")
	}
	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback with a snapshot of task, if set
func (s *Service) notifyUpdate(task *model.FetchTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return "task-" + uuid.NewString()
}

func clampParallel(n int) int {
	if n < MinParallel {
		return MinParallel
	}
	if n > MaxParallel {
		return MaxParallel
	}
	return n
}
