package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/tabplot/internal/config"
	"github.com/ytget/tabplot/internal/fetch"
	"github.com/ytget/tabplot/internal/logging"
	"github.com/ytget/tabplot/internal/model"
	"github.com/ytget/tabplot/internal/platform"
	"github.com/ytget/tabplot/internal/plot"
	"github.com/ytget/tabplot/internal/table"
)

// StatusFilter enumerates visible subsets of tasks in the UI.
type StatusFilter int

const (
	FilterAll StatusFilter = iota
	FilterActive
	FilterDone
	FilterErrors
)

// String returns the label for the filter selector.
func (sf StatusFilter) String() string {
	switch sf {
	case FilterAll:
		return "All"
	case FilterActive:
		return "Active"
	case FilterDone:
		return "Done"
	case FilterErrors:
		return "Errors"
	default:
		return "Unknown"
	}
}

// LocalizationKey returns the key of the filter's display name
func (sf StatusFilter) LocalizationKey() string {
	switch sf {
	case FilterActive:
		return KeyFilterActive
	case FilterDone:
		return KeyFilterDone
	case FilterErrors:
		return KeyFilterErrors
	default:
		return KeyFilterAll
	}
}

// Matches reports whether a task with the given status passes the filter
func (sf StatusFilter) Matches(status model.TaskStatus) bool {
	switch sf {
	case FilterActive:
		return status == model.TaskStatusPending || status.IsActive()
	case FilterDone:
		return status.HasFile()
	case FilterErrors:
		return status == model.TaskStatusError
	default:
		return true
	}
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	fetchSvc     fetch.Fetcher
	settings     *config.Settings
	localization *Localization
	log          *logrus.Entry
	version      string

	// Fetch row
	urlEntry *widget.Entry
	fetchBtn *widget.Button

	// Task list
	taskList      *widget.List
	filterSelect  *widget.Select
	currentFilter StatusFilter
	tasksMutex    sync.Mutex
	tasks         []*model.FetchTask // all known tasks, in arrival order
	filteredTasks []*model.FetchTask

	// Table and plotting
	columnsLabel *widget.Label
	xLabel       *widget.Label
	yLabel       *widget.Label
	columnsEntry *widget.Entry
	openBtn      *widget.Button
	tableView    *TableView
	xSelect      *widget.Select
	yGroup       *widget.CheckGroup
	plotBtn      *widget.Button
	summaryLabel *widget.Label
	current      *table.Table
	currentPath  string
	panels       []*plot.Panel

	// Notification line
	notificationLabel *widget.Label
	notificationSeq   int
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, fetchSvc fetch.Fetcher, settings *config.Settings) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	if err := platform.CreateDirectoryIfNotExists(settings.GetCacheDirectory()); err != nil {
		logging.For("ui").WithError(err).Warn("failed to ensure cache directory")
	}

	ui := &RootUI{
		window:       window,
		app:          app,
		fetchSvc:     fetchSvc,
		settings:     settings,
		localization: localization,
		log:          logging.For("ui"),
	}

	window.SetTitle(ui.windowTitle())

	ui.fetchSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Fetch row
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.SetText(ui.settings.GetLastURL())
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onFetchClick()
	}
	ui.fetchBtn = widget.NewButton(ui.localization.GetText(KeyFetch), ui.onFetchClick)
	ui.fetchBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	fetchRow := container.NewBorder(nil, nil, settingsBtn, ui.fetchBtn, ui.urlEntry)

	// Columns row
	ui.columnsEntry = widget.NewEntry()
	ui.columnsEntry.SetText(ui.settings.GetDefaultColumns())
	ui.openBtn = widget.NewButton(ui.localization.GetText(KeyOpenTable), ui.onOpenTableFile)
	ui.columnsLabel = widget.NewLabel(ui.localization.GetText(KeyColumns) + ":")
	columnsRow := container.NewBorder(nil, nil, ui.columnsLabel, ui.openBtn, ui.columnsEntry)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Truncation = fyne.TextTruncateEllipsis

	top := container.NewVBox(fetchRow, columnsRow)

	// Task list with filter
	ui.taskList = widget.NewList(
		func() int {
			return len(ui.filteredTasks)
		},
		func() fyne.CanvasObject { return ui.createTaskItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateTaskItem(id, obj) },
	)
	ui.filterSelect = widget.NewSelect(ui.filterLabels(), func(string) {
		if idx := ui.filterSelect.SelectedIndex(); idx >= 0 {
			ui.onFilterChanged(StatusFilter(idx))
		}
	})
	ui.filterSelect.SetSelectedIndex(int(FilterAll))
	left := container.NewBorder(ui.filterSelect, nil, nil, nil, ui.taskList)

	// Table, axis selection and plotting
	ui.tableView = NewTableView()
	ui.xSelect = widget.NewSelect(nil, nil)
	ui.yGroup = widget.NewCheckGroup(nil, nil)
	ui.yGroup.Horizontal = true
	ui.plotBtn = widget.NewButton(ui.localization.GetText(KeyPlot), ui.onPlot)
	ui.plotBtn.Disable()
	ui.summaryLabel = widget.NewLabel("")
	ui.summaryLabel.TextStyle = fyne.TextStyle{Monospace: true}
	ui.xLabel = widget.NewLabel(ui.localization.GetText(KeyXAxis))
	ui.yLabel = widget.NewLabel(ui.localization.GetText(KeyYAxis))

	axisRow := container.NewBorder(nil, nil,
		container.NewHBox(ui.xLabel, ui.xSelect, ui.yLabel),
		ui.plotBtn,
		container.NewHScroll(ui.yGroup),
	)
	right := container.NewBorder(axisRow, ui.summaryLabel, nil, nil, ui.tableView.Widget())

	split := container.NewHSplit(left, right)
	split.Offset = SplitOffset

	ui.window.SetContent(container.NewBorder(top, ui.notificationLabel, nil, nil, split))
	ui.log.Debug("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	openItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenTable), ui.onOpenTableFile)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	quitItem := fyne.NewMenuItem(ui.localization.GetText(KeyQuit), ui.app.Quit)
	quitItem.IsQuit = true

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), openItem, settingsItem, fyne.NewMenuItemSeparator(), quitItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// SetVersion adds the build version to the window title
func (ui *RootUI) SetVersion(version string) {
	ui.version = version
	ui.window.SetTitle(ui.windowTitle())
}

func (ui *RootUI) windowTitle() string {
	title := ui.localization.GetText(KeyAppTitle)
	if ui.version != "" {
		title += " v" + ui.version
	}
	return title
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.windowTitle())
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.fetchBtn.SetText(ui.localization.GetText(KeyFetch))
	ui.openBtn.SetText(ui.localization.GetText(KeyOpenTable))
	ui.plotBtn.SetText(ui.localization.GetText(KeyPlot))
	ui.columnsLabel.SetText(ui.localization.GetText(KeyColumns) + ":")
	ui.xLabel.SetText(ui.localization.GetText(KeyXAxis))
	ui.yLabel.SetText(ui.localization.GetText(KeyYAxis))

	selected := ui.filterSelect.SelectedIndex()
	ui.filterSelect.Options = ui.filterLabels()
	ui.filterSelect.SetSelectedIndex(selected)
	ui.filterSelect.Refresh()

	ui.taskList.Refresh()
}

// filterLabels returns the localized filter names, indexed by StatusFilter
func (ui *RootUI) filterLabels() []string {
	filters := []StatusFilter{FilterAll, FilterActive, FilterDone, FilterErrors}
	labels := make([]string, len(filters))
	for i, f := range filters {
		labels[i] = ui.localization.GetText(f.LocalizationKey())
	}
	return labels
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}
	_, err := fetch.FileNameFromURL(input)
	return err
}

// onFetchClick handles the fetch button click
func (ui *RootUI) onFetchClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL))
		return
	}

	if err := ui.validateURL(urlText); err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL) + ": " + err.Error())
		return
	}

	task, err := ui.fetchSvc.AddTask(ui.settings.GetCacheDirectory(), urlText)
	if err != nil {
		if errors.Is(err, fetch.ErrTaskExists) {
			ui.showNotification(ui.localization.GetText(KeyAlreadyInQueue))
		} else {
			ui.showNotification(err.Error())
		}
		return
	}

	ui.log.WithFields(logrus.Fields{"task_id": task.ID, "url": task.URL}).Info("task added")
	ui.settings.SetLastURL(urlText)
	// a worker update may already have arrived; keep it
	ui.upsertTask(task, false)
	ui.showNotification(ui.localization.GetText(KeyFetchStarted) + ": " + task.FileName)
}

// onTaskUpdate receives task snapshots from the fetch service
func (ui *RootUI) onTaskUpdate(task *model.FetchTask) {
	fyne.Do(func() {
		ui.upsertTask(task, true)

		switch task.Status {
		case model.TaskStatusCompleted:
			ui.showNotification(ui.localization.GetText(KeyFetchCompleted) + ": " + task.OutputPath)
		case model.TaskStatusCached:
			ui.showNotification(ui.localization.GetText(KeyAlreadyCached) + ": " + task.OutputPath)
		case model.TaskStatusError:
			ui.showNotification(IconError + " " + task.GetDisplayTitle() + ": " + task.LastError)
		}
	})
}

// upsertTask records a task snapshot and refreshes the list. An existing
// entry is only replaced when overwrite is set.
func (ui *RootUI) upsertTask(task *model.FetchTask, overwrite bool) {
	ui.tasksMutex.Lock()
	found := false
	for i, t := range ui.tasks {
		if t.ID == task.ID {
			if overwrite {
				ui.tasks[i] = task
			}
			found = true
			break
		}
	}
	if !found {
		ui.tasks = append(ui.tasks, task)
	}
	ui.tasksMutex.Unlock()

	ui.updateFilteredTasks()
	ui.taskList.Refresh()
}

// onFilterChanged handles filter changes
func (ui *RootUI) onFilterChanged(filter StatusFilter) {
	ui.currentFilter = filter
	ui.updateFilteredTasks()
	if ui.taskList != nil {
		ui.taskList.Refresh()
	}
}

// updateFilteredTasks updates the filtered tasks list based on current filter
func (ui *RootUI) updateFilteredTasks() {
	ui.tasksMutex.Lock()
	defer ui.tasksMutex.Unlock()

	ui.filteredTasks = ui.filteredTasks[:0]
	for _, task := range ui.tasks {
		if ui.currentFilter.Matches(task.Status) {
			ui.filteredTasks = append(ui.filteredTasks, task)
		}
	}
}

// createTaskItem creates a placeholder row; updateTaskItem fills it in
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	row := NewTaskRow(nil, ui.localization)
	row.SetCallbacks(ui.onLoadFile, ui.onRevealFile, ui.onRemoveTask)
	return row
}

// updateTaskItem binds a list row to a task
func (ui *RootUI) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id >= len(ui.filteredTasks) {
		return
	}
	if row, ok := item.(*TaskRow); ok {
		row.UpdateTask(ui.filteredTasks[id])
	}
}

// onRevealFile opens the folder holding a fetched file
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.log.WithField("path", filePath).WithError(err).Warn("reveal failed")
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// onRemoveTask drops a task from the service and the list
func (ui *RootUI) onRemoveTask(taskID string) {
	if err := ui.fetchSvc.RemoveTask(taskID); err != nil && !errors.Is(err, fetch.ErrTaskNotFound) {
		dialog.ShowError(err, ui.window)
		return
	}

	ui.tasksMutex.Lock()
	for i, t := range ui.tasks {
		if t.ID == taskID {
			ui.tasks = append(ui.tasks[:i], ui.tasks[i+1:]...)
			break
		}
	}
	ui.tasksMutex.Unlock()

	ui.updateFilteredTasks()
	ui.taskList.Refresh()
}

// onOpenTableFile lets the user pick a local file to load
func (ui *RootUI) onOpenTableFile() {
	open := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		ui.onLoadFile(path)
	}, ui.window)
	open.Show()
}

// onLoadFile loads path with the entered column names and shows the result
func (ui *RootUI) onLoadFile(path string) {
	if err := ui.LoadTable(path); err != nil {
		ui.log.WithField("path", path).WithError(err).Warn("table load failed")
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorLoadingTable), err), ui.window)
	}
}

// LoadTable parses path using the column names in the columns entry and
// makes it the current table.
func (ui *RootUI) LoadTable(path string) error {
	columns := table.ParseColumnNames(ui.columnsEntry.Text)
	t, err := table.Load(path, columns)
	if err != nil {
		return err
	}

	ui.current = t
	ui.currentPath = path
	ui.tableView.SetTable(t)

	xOptions := append([]string{plot.IndexColumn}, t.NumericColumns()...)
	ui.xSelect.Options = xOptions
	ui.xSelect.SetSelected(plot.IndexColumn)
	ui.xSelect.Refresh()

	ui.yGroup.Options = t.NumericColumns()
	ui.yGroup.Selected = nil
	if numeric := t.NumericColumns(); len(numeric) > 0 {
		ui.yGroup.SetSelected([]string{numeric[len(numeric)-1]})
	}
	ui.yGroup.Refresh()

	if len(t.NumericColumns()) > 0 {
		ui.plotBtn.Enable()
	} else {
		ui.plotBtn.Disable()
	}

	ui.summaryLabel.SetText(formatSummary(t.Summarize()))
	ui.showNotification(fmt.Sprintf(ui.localization.GetText(KeyTableLoaded), t.NumRows(), filepath.Base(path)))
	ui.log.WithFields(logrus.Fields{"path": path, "rows": t.NumRows()}).Info("table loaded")
	return nil
}

// onPlot opens a plot panel for the selected columns
func (ui *RootUI) onPlot() {
	if _, err := ui.OpenPlot(); err != nil {
		ui.showNotification(err.Error())
	}
}

// OpenPlot builds series from the current selection and opens a panel
func (ui *RootUI) OpenPlot() (*plot.Panel, error) {
	if ui.current == nil {
		return nil, errors.New(ui.localization.GetText(KeyNoTable))
	}
	if len(ui.yGroup.Selected) == 0 {
		return nil, errors.New(ui.localization.GetText(KeySelectYColumn))
	}

	series, err := plot.SeriesFromTable(ui.current, ui.xSelect.Selected, ui.yGroup.Selected...)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s: %s vs %s", filepath.Base(ui.currentPath),
		strings.Join(ui.yGroup.Selected, ", "), ui.xSelect.Selected)
	panel := plot.NewPanel(ui.app, title, series...)
	ui.panels = append(ui.panels, panel)
	return panel, nil
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applySettings).Show()
}

// applySettings pushes saved settings into running components
func (ui *RootUI) applySettings() {
	ui.fetchSvc.SetMaxParallel(ui.settings.GetMaxParallelFetches())
	if err := platform.CreateDirectoryIfNotExists(ui.settings.GetCacheDirectory()); err != nil {
		ui.log.WithError(err).Warn("failed to ensure cache directory")
	}
	ui.onLanguageChange(ui.settings.GetLanguage())
}

// showNotification displays a message in the status line and clears it
// after NotificationAutoHide unless a newer message replaced it.
func (ui *RootUI) showNotification(message string) {
	if ui.notificationLabel == nil {
		return
	}
	ui.notificationSeq++
	seq := ui.notificationSeq
	ui.notificationLabel.SetText(message)

	go func() {
		time.Sleep(NotificationAutoHide)
		fyne.Do(func() {
			if ui.notificationSeq == seq {
				ui.notificationLabel.SetText("")
			}
		})
	}()
}

// Notification returns the text currently shown in the status line
func (ui *RootUI) Notification() string {
	return ui.notificationLabel.Text
}

// formatSummary renders per-column statistics on one line per column
func formatSummary(summaries []table.ColumnSummary) string {
	var b strings.Builder
	for i, s := range summaries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-12s n=%d%smean=%s%ssd=%s%smin=%s%smax=%s",
			s.Name, s.Count,
			MiddleDotSeparator, plot.FormatTick(s.Mean),
			MiddleDotSeparator, plot.FormatTick(s.StdDev),
			MiddleDotSeparator, plot.FormatTick(s.Min),
			MiddleDotSeparator, plot.FormatTick(s.Max))
	}
	return b.String()
}
