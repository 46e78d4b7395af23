package fetch

import (
	"context"

	"github.com/ytget/tabplot/internal/model"
)

// Fetcher defines the interface for the fetch service.
type Fetcher interface {
	// DownloadFile fetches rawURL into dir unless the target file already exists.
	DownloadFile(ctx context.Context, dir, rawURL string, progress ProgressFunc) (*Result, error)

	SetUpdateCallback(func(*model.FetchTask))
	AddTask(dir, rawURL string) (*model.FetchTask, error)
	GetTask(id string) (*model.FetchTask, bool)
	GetAllTasks() []*model.FetchTask
	RemoveTask(id string) error

	// SetMaxParallel sets the maximum number of parallel fetches
	SetMaxParallel(max int)
}
