package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/tabplot/internal/config"
	"github.com/ytget/tabplot/internal/fetch"
	"github.com/ytget/tabplot/internal/model"
	"github.com/ytget/tabplot/internal/plot"
)

type fakeFetcher struct {
	mu          sync.Mutex
	added       []string
	removed     []string
	maxParallel int
	addErr      error
	callback    func(*model.FetchTask)
}

func (f *fakeFetcher) DownloadFile(_ context.Context, dir, rawURL string, _ fetch.ProgressFunc) (*fetch.Result, error) {
	path, err := fetch.TargetPath(dir, rawURL)
	if err != nil {
		return nil, err
	}
	return &fetch.Result{Path: path, Cached: true}, nil
}

func (f *fakeFetcher) SetUpdateCallback(cb func(*model.FetchTask)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callback = cb
}

func (f *fakeFetcher) AddTask(dir, rawURL string) (*model.FetchTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return nil, f.addErr
	}
	path, err := fetch.TargetPath(dir, rawURL)
	if err != nil {
		return nil, err
	}
	f.added = append(f.added, rawURL)
	return &model.FetchTask{
		ID:         fmt.Sprintf("task-%d", len(f.added)),
		URL:        rawURL,
		Dir:        dir,
		FileName:   filepath.Base(path),
		OutputPath: path,
		Status:     model.TaskStatusPending,
	}, nil
}

func (f *fakeFetcher) GetTask(string) (*model.FetchTask, bool) { return nil, false }

func (f *fakeFetcher) GetAllTasks() []*model.FetchTask { return nil }

func (f *fakeFetcher) RemoveTask(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeFetcher) SetMaxParallel(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxParallel = n
}

func newTestRoot(t *testing.T) (*RootUI, *fakeFetcher, fyne.App) {
	t.Helper()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	settings := config.NewSettings(a)
	settings.SetCacheDirectory(t.TempDir())

	f := &fakeFetcher{}
	root := NewRootUI(a.NewWindow("test"), a, f, settings)
	return root, f, a
}

func writeTable(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestStatusFilterMatches(t *testing.T) {
	tests := []struct {
		filter StatusFilter
		status model.TaskStatus
		want   bool
	}{
		{FilterAll, model.TaskStatusError, true},
		{FilterActive, model.TaskStatusPending, true},
		{FilterActive, model.TaskStatusFetching, true},
		{FilterActive, model.TaskStatusCompleted, false},
		{FilterDone, model.TaskStatusCached, true},
		{FilterDone, model.TaskStatusCompleted, true},
		{FilterDone, model.TaskStatusError, false},
		{FilterErrors, model.TaskStatusError, true},
		{FilterErrors, model.TaskStatusFetching, false},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String()+"/"+tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.status))
		})
	}
}

func TestNewRootUIRegistersCallback(t *testing.T) {
	root, f, _ := newTestRoot(t)

	assert.NotNil(t, f.callback)
	assert.Equal(t, "Tabplot", root.window.Title())

	root.SetVersion("1.0.0")
	assert.Equal(t, "Tabplot v1.0.0", root.window.Title())
}

func TestFetchClickValidatesInput(t *testing.T) {
	root, f, _ := newTestRoot(t)

	root.urlEntry.SetText("")
	root.onFetchClick()
	assert.Equal(t, root.localization.GetText(KeyPleaseEnterURL), root.Notification())

	root.urlEntry.SetText("https://example.com/")
	root.onFetchClick()
	assert.Contains(t, root.Notification(), root.localization.GetText(KeyInvalidURL))

	assert.Empty(t, f.added)
}

func TestFetchClickQueuesTask(t *testing.T) {
	root, f, _ := newTestRoot(t)

	url := "https://example.com/data/table.txt"
	root.urlEntry.SetText(url)
	root.onFetchClick()

	require.Equal(t, []string{url}, f.added)
	assert.Equal(t, url, root.settings.GetLastURL())
	require.Len(t, root.filteredTasks, 1)
	assert.Equal(t, "table.txt", root.filteredTasks[0].FileName)
	assert.Contains(t, root.Notification(), "table.txt")
}

func TestFetchClickDuplicate(t *testing.T) {
	root, f, _ := newTestRoot(t)
	f.addErr = fmt.Errorf("%w for x", fetch.ErrTaskExists)

	root.urlEntry.SetText("https://example.com/a.txt")
	root.onFetchClick()

	assert.Equal(t, root.localization.GetText(KeyAlreadyInQueue), root.Notification())
	assert.Empty(t, root.tasks)
}

func TestTaskUpdatesReplaceSnapshots(t *testing.T) {
	root, _, _ := newTestRoot(t)

	task := &model.FetchTask{ID: "task-1", FileName: "a.txt", OutputPath: "/tmp/a.txt", Status: model.TaskStatusFetching}
	root.onTaskUpdate(task)
	require.Len(t, root.tasks, 1)

	done := *task
	done.Status = model.TaskStatusCompleted
	root.onTaskUpdate(&done)
	require.Len(t, root.tasks, 1)
	assert.Equal(t, model.TaskStatusCompleted, root.tasks[0].Status)
	assert.Contains(t, root.Notification(), "/tmp/a.txt")

	// a stale pending snapshot does not win over the worker update
	pending := *task
	pending.Status = model.TaskStatusPending
	root.upsertTask(&pending, false)
	assert.Equal(t, model.TaskStatusCompleted, root.tasks[0].Status)

	root.onFilterChanged(FilterErrors)
	assert.Empty(t, root.filteredTasks)
	root.onFilterChanged(FilterDone)
	assert.Len(t, root.filteredTasks, 1)
}

func TestRemoveTask(t *testing.T) {
	root, f, _ := newTestRoot(t)

	root.onTaskUpdate(&model.FetchTask{ID: "task-1", Status: model.TaskStatusCompleted})
	root.onTaskUpdate(&model.FetchTask{ID: "task-2", Status: model.TaskStatusError})
	root.onRemoveTask("task-1")

	assert.Equal(t, []string{"task-1"}, f.removed)
	require.Len(t, root.tasks, 1)
	assert.Equal(t, "task-2", root.tasks[0].ID)
}

func TestLoadTableAndPlot(t *testing.T) {
	root, _, _ := newTestRoot(t)
	path := writeTable(t, "a 1 10\nb 2 20\nc 3 30\n")

	root.columnsEntry.SetText("name, x, y")
	require.NoError(t, root.LoadTable(path))

	assert.Equal(t, []string{plot.IndexColumn, "x", "y"}, root.xSelect.Options)
	assert.Equal(t, plot.IndexColumn, root.xSelect.Selected)
	assert.Equal(t, []string{"y"}, root.yGroup.Selected)
	assert.False(t, root.plotBtn.Disabled())
	assert.Equal(t, "name", root.tableView.CellText(0, 0))
	assert.Equal(t, "b", root.tableView.CellText(2, 0))
	assert.Contains(t, root.summaryLabel.Text, "mean=20")
	assert.Contains(t, root.Notification(), "data.txt")

	root.xSelect.SetSelected("x")
	root.yGroup.SetSelected([]string{"x", "y"})
	panel, err := root.OpenPlot()
	require.NoError(t, err)
	assert.True(t, panel.Shown())
	require.Len(t, panel.Canvas().Series(), 2)
	assert.Equal(t, []float64{1, 2, 3}, panel.Canvas().Series()[1].X)
	assert.Equal(t, "data.txt: x, y vs x", panel.Window().Title())
}

func TestLoadTableErrors(t *testing.T) {
	root, _, _ := newTestRoot(t)

	root.columnsEntry.SetText("name x")
	err := root.LoadTable(writeTable(t, "a 1 10\n"))
	require.Error(t, err)
	assert.Nil(t, root.current)
	assert.True(t, root.plotBtn.Disabled())
}

func TestOpenPlotRequiresSelection(t *testing.T) {
	root, _, _ := newTestRoot(t)

	_, err := root.OpenPlot()
	require.EqualError(t, err, root.localization.GetText(KeyNoTable))

	root.columnsEntry.SetText("name x")
	require.NoError(t, root.LoadTable(writeTable(t, "a 1\nb 2\n")))
	root.yGroup.SetSelected(nil)

	_, err = root.OpenPlot()
	require.EqualError(t, err, root.localization.GetText(KeySelectYColumn))
}

func TestApplySettings(t *testing.T) {
	root, f, _ := newTestRoot(t)

	root.settings.SetMaxParallelFetches(4)
	root.settings.SetLanguage("pt")
	root.applySettings()

	assert.Equal(t, 4, f.maxParallel)
	assert.Equal(t, "pt", root.localization.GetCurrentLanguage())
	assert.Equal(t, root.localization.GetText(KeyFetch), root.fetchBtn.Text)
}

func TestFormatSummary(t *testing.T) {
	root, _, _ := newTestRoot(t)
	root.columnsEntry.SetText("n a b")
	require.NoError(t, root.LoadTable(writeTable(t, "r 1 2\ns 3 4\n")))

	lines := root.summaryLabel.Text
	assert.Contains(t, lines, "a")
	assert.Contains(t, lines, "n=2")
	assert.Contains(t, lines, "max=4")
}

func TestLanguageChangeRelabelsWindow(t *testing.T) {
	root, _, _ := newTestRoot(t)

	root.filterSelect.SetSelectedIndex(int(FilterDone))
	root.onLanguageChange("ru")

	l := root.localization
	assert.Equal(t, l.GetText(KeyColumns)+":", root.columnsLabel.Text)
	assert.Equal(t, "Ось X", root.xLabel.Text)
	assert.Equal(t, l.GetText(KeyYAxis), root.yLabel.Text)
	assert.Equal(t, []string{"Все", "Активные", "Готовые", "Ошибки"}, root.filterSelect.Options)
	assert.Equal(t, "Готовые", root.filterSelect.Selected)
	assert.Equal(t, FilterDone, root.currentFilter)
}
