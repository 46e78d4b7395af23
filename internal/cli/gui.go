package cli

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/tabplot/internal/config"
	"github.com/ytget/tabplot/internal/fetch"
	"github.com/ytget/tabplot/internal/logging"
	"github.com/ytget/tabplot/internal/ui"
)

const (
	AppID   = "com.ytget.tabplot"
	AppName = "tabplot"
)

func newApp() fyne.App {
	return app.NewWithID(AppID)
}

// BuildMainWindow wires settings, the fetch service and the root UI into a
// window of a.
func BuildMainWindow(a fyne.App, version string) (fyne.Window, *ui.RootUI) {
	a.Settings().SetTheme(ui.NewCompactTheme())

	window := a.NewWindow(AppName)
	window.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(a)
	fetchSvc := fetch.NewService(settings.GetMaxParallelFetches())

	root := ui.NewRootUI(window, a, fetchSvc, settings)
	root.SetVersion(version)
	return window, root
}

// RunGUI opens the main window and blocks until it is closed.
func RunGUI(version string) error {
	logging.For("cli").WithField("version", version).Info("starting desktop window")

	window, _ := BuildMainWindow(newApp(), version)
	window.ShowAndRun()
	return nil
}
