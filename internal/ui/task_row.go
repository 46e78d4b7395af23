package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/tabplot/internal/model"
)

// TaskRow represents a compact fetch task row widget
type TaskRow struct {
	widget.BaseWidget

	task         *model.FetchTask
	localization *Localization

	// UI components
	titleLabel  *widget.Label
	statusLabel *widget.Label
	sizeLabel   *widget.Label
	progressBar *widget.ProgressBar

	// Action buttons
	loadBtn   *widget.Button
	revealBtn *widget.Button
	removeBtn *widget.Button

	// Callbacks
	onLoad   func(filePath string)
	onReveal func(filePath string)
	onRemove func(taskID string)
}

// NewTaskRow creates a new task row widget
func NewTaskRow(task *model.FetchTask, localization *Localization) *TaskRow {
	if task == nil {
		task = &model.FetchTask{Status: model.TaskStatusPending, TotalBytes: -1}
	}

	tr := &TaskRow{
		task:         task,
		localization: localization,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(onLoad, onReveal func(filePath string), onRemove func(taskID string)) {
	tr.onLoad = onLoad
	tr.onReveal = onReveal
	tr.onRemove = onRemove
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task *model.FetchTask) {
	if task == nil {
		return
	}
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

// Task returns the task currently shown
func (tr *TaskRow) Task() *model.FetchTask {
	return tr.task
}

// createUI creates the UI components
func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.sizeLabel = widget.NewLabel("")
	tr.sizeLabel.TextStyle = fyne.TextStyle{Monospace: true}
	tr.progressBar = widget.NewProgressBar()

	tr.loadBtn = widget.NewButton(tr.localization.GetText(KeyLoad), func() {
		if tr.onLoad != nil && tr.task.Status.HasFile() {
			tr.onLoad(tr.task.OutputPath)
		}
	})
	tr.loadBtn.Importance = widget.HighImportance

	tr.revealBtn = widget.NewButton(tr.localization.GetText(KeyReveal), func() {
		if tr.onReveal != nil && tr.task.Status.HasFile() {
			tr.onReveal(tr.task.OutputPath)
		}
	})

	tr.removeBtn = widget.NewButton(tr.localization.GetText(KeyRemove), func() {
		if tr.onRemove != nil {
			tr.onRemove(tr.task.ID)
		}
	})
	tr.removeBtn.Importance = widget.LowImportance
}

// updateFromTask updates UI components based on task state
func (tr *TaskRow) updateFromTask() {
	title := strings.Join(strings.Fields(tr.task.GetDisplayTitle()), " ")
	tr.titleLabel.SetText(title)

	switch tr.task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
		tr.statusLabel.SetText(IconError + " " + tr.localization.GetText(statusKey(tr.task.Status)))
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText(IconDone + " " + tr.localization.GetText(statusKey(tr.task.Status)))
	case model.TaskStatusCached:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText(IconCached + " " + tr.localization.GetText(statusKey(tr.task.Status)))
	case model.TaskStatusFetching:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(IconFetching + " " + tr.localization.GetText(statusKey(tr.task.Status)))
	default:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconPending + " " + tr.localization.GetText(statusKey(tr.task.Status)))
	}

	if tr.task.Status == model.TaskStatusError {
		tr.sizeLabel.SetText(tr.task.LastError)
	} else {
		tr.sizeLabel.SetText(tr.task.GetSizeString())
	}
	tr.progressBar.SetValue(tr.task.Progress)

	tr.refreshTexts()
	tr.updateButtons()
}

// refreshTexts applies the current language to the buttons
func (tr *TaskRow) refreshTexts() {
	for btn, key := range map[*widget.Button]string{
		tr.loadBtn:   KeyLoad,
		tr.revealBtn: KeyReveal,
		tr.removeBtn: KeyRemove,
	} {
		if text := tr.localization.GetText(key); btn.Text != text {
			btn.SetText(text)
		}
	}
}

// statusKey maps a task status to its localization key
func statusKey(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusFetching:
		return KeyStatusFetching
	case model.TaskStatusCached:
		return KeyStatusCached
	case model.TaskStatusCompleted:
		return KeyStatusCompleted
	case model.TaskStatusError:
		return KeyStatusError
	default:
		return KeyStatusPending
	}
}

// updateButtons updates button states based on task status
func (tr *TaskRow) updateButtons() {
	if tr.task.Status.HasFile() && tr.task.OutputPath != "" {
		tr.loadBtn.Enable()
		tr.revealBtn.Enable()
	} else {
		tr.loadBtn.Disable()
		tr.revealBtn.Disable()
	}

	if tr.task.Status.IsActive() || tr.task.ID == "" {
		tr.removeBtn.Disable()
	} else {
		tr.removeBtn.Enable()
	}
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewHBox(
		fixedWidth(SizeLabelWidth, tr.sizeLabel),
		fixedWidth(StatusLabelWidth, tr.statusLabel),
	)
	actions := container.NewHBox(tr.loadBtn, tr.revealBtn, tr.removeBtn)

	top := container.NewBorder(nil, nil, nil, info, tr.titleLabel)
	bottom := container.NewBorder(nil, nil, nil, actions, tr.progressBar)

	content := container.NewVBox(top, bottom, widget.NewSeparator())
	return widget.NewSimpleRenderer(content)
}

// MinSize keeps rows from collapsing inside the list
func (tr *TaskRow) MinSize() fyne.Size {
	min := tr.BaseWidget.MinSize()
	if min.Width < RowMinWidth {
		min.Width = RowMinWidth
	}
	if min.Height < RowMinHeight {
		min.Height = RowMinHeight
	}
	return min
}
