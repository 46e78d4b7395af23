package plot

import (
	"fmt"
	"image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/tabplot/internal/logging"
)

// Panel window sizing
const (
	PanelWidth  float32 = 720
	PanelHeight float32 = 480
)

// Panel is a window that hosts a plotting Canvas
type Panel struct {
	window   fyne.Window
	canvas   *Canvas
	shown    bool
	onClosed func()
}

// NewPanel creates a window embedding a Canvas for series and shows it
// before returning.
func NewPanel(app fyne.App, title string, series ...Series) *Panel {
	p := &Panel{
		window: app.NewWindow(title),
		canvas: NewCanvas(series...),
	}
	p.canvas.SetTitle(title)

	saveBtn := widget.NewButtonWithIcon("PNG", theme.DocumentSaveIcon(), p.onSave)
	saveBtn.Importance = widget.LowImportance
	closeBtn := widget.NewButtonWithIcon("", theme.CancelIcon(), p.Close)
	closeBtn.Importance = widget.LowImportance

	toolbar := container.NewHBox(layout.NewSpacer(), saveBtn, closeBtn)
	p.window.SetContent(container.NewBorder(nil, toolbar, nil, nil, p.canvas))
	p.window.Resize(fyne.NewSize(PanelWidth, PanelHeight))
	p.window.SetOnClosed(p.closed)

	p.Show()
	return p
}

// Show displays the window
func (p *Panel) Show() {
	p.window.Show()
	p.shown = true
}

// Shown reports whether Show has been called and the panel was not closed since
func (p *Panel) Shown() bool {
	return p.shown
}

// Close closes the window
func (p *Panel) Close() {
	p.window.Close()
}

// SetOnClosed sets a function run after the window was closed, whether by
// Close or by the window manager
func (p *Panel) SetOnClosed(fn func()) {
	p.onClosed = fn
}

func (p *Panel) closed() {
	p.shown = false
	if p.onClosed != nil {
		p.onClosed()
	}
}

// Window returns the hosting window
func (p *Panel) Window() fyne.Window {
	return p.window
}

// Canvas returns the embedded plotting canvas
func (p *Panel) Canvas() *Canvas {
	return p.canvas
}

// SetSeries replaces the plotted data
func (p *Panel) SetSeries(series ...Series) {
	p.canvas.SetSeries(series...)
}

func (p *Panel) onSave() {
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()

		if err := png.Encode(w, p.window.Canvas().Capture()); err != nil {
			dialog.ShowError(fmt.Errorf("failed to write image: %w", err), p.window)
			return
		}
		logging.For("plot").WithField("uri", w.URI().String()).Info("plot image saved")
	}, p.window)
	save.SetFileName("plot.png")
	save.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	save.Show()
}
