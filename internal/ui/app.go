package ui

import (
	"fmt"

	"LocalBoard/internal/config"
	"LocalBoard/internal/export"
	"LocalBoard/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
)

// AppID identifies LocalBoard to the fyne preferences store.
const AppID = "io.localboard.app"

// AppOptions configures the main window.
type AppOptions struct {
	Title     string
	Session   *session.Session
	ShareLink string
	Export    config.ExportConfig
	Logger    *log.Logger

	// OnReady runs once the window exists and before the event loop
	// starts. Callers use it to hook status updates to the network.
	OnReady func(*BoardWidget)
}

// RunApp opens the board window and blocks until it is closed.
func RunApp(opts AppOptions) {
	a := app.NewWithID(AppID)
	w, board := NewMainWindow(a, opts)
	if opts.OnReady != nil {
		opts.OnReady(board)
	}
	w.ShowAndRun()
	board.Detach()
}

// NewMainWindow lays out the board, its toolbar and status bar in a new
// window of a.
func NewMainWindow(a fyne.App, opts AppOptions) (fyne.Window, *BoardWidget) {
	title := opts.Title
	if title == "" {
		title = "Local Whiteboard"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	w := a.NewWindow(title)
	w.Resize(fyne.NewSize(1024, 768))

	board := NewBoardWidget(opts.Session)
	toolbar := NewToolbar(opts.Session.Tools())
	toolbar.OnClear = func() {
		n := opts.Session.ClearLocal()
		board.SetStatus(fmt.Sprintf("Cleared %d of your strokes", n))
	}

	bottom := []fyne.CanvasObject{board.StatusBar()}
	if opts.ShareLink != "" {
		link := widget.NewLabel(opts.ShareLink)
		link.Selectable = true
		copyBtn := widget.NewButton("Copy link", func() {
			w.Clipboard().SetContent(opts.ShareLink)
			board.SetStatus("Share link copied")
		})
		bottom = append(bottom, container.NewHBox(widget.NewLabel("Share:"), link, copyBtn))
	}

	content := container.NewBorder(toolbar.Object(), container.NewVBox(bottom...), nil, nil, board)
	w.SetContent(content)
	w.SetMainMenu(mainMenu(w, board, opts, logger))
	return w, board
}

func mainMenu(w fyne.Window, board *BoardWidget, opts AppOptions, logger *log.Logger) *fyne.MainMenu {
	s := opts.Session

	save := fyne.NewMenuItem("Save…", func() {
		d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			defer wc.Close()
			if err := s.Save(wc); err != nil {
				logger.Error("save board", "err", err)
				dialog.ShowError(err, w)
				return
			}
			board.SetStatus("Saved to " + wc.URI().Name())
		}, w)
		d.SetFileName("board.json")
		d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
		d.Show()
	})

	open := fyne.NewMenuItem("Open…", func() {
		d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			defer rc.Close()
			n, err := s.LoadFrom(rc)
			if err != nil {
				logger.Error("open board", "err", err)
				dialog.ShowError(err, w)
				return
			}
			board.SetStatus(fmt.Sprintf("Loaded %d strokes from %s", n, rc.URI().Name()))
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
		d.Show()
	})

	exportPDF := fyne.NewMenuItem("Export PDF…", func() {
		d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			defer wc.Close()
			if err := export.WritePDF(wc, s.Snapshot()); err != nil {
				logger.Error("export pdf", "err", err)
				dialog.ShowError(err, w)
				return
			}
			board.SetStatus("Exported " + wc.URI().Name())
		}, w)
		d.SetFileName("whiteboard.pdf")
		d.Show()
	})

	exportPNG := fyne.NewMenuItem("Export PNG…", func() {
		d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			defer wc.Close()
			if err := export.WritePNG(wc, s.Snapshot(), opts.Export.Width, opts.Export.Height); err != nil {
				logger.Error("export png", "err", err)
				dialog.ShowError(err, w)
				return
			}
			board.SetStatus("Exported " + wc.URI().Name())
		}, w)
		d.SetFileName("whiteboard.png")
		d.Show()
	})

	file := fyne.NewMenu("File", open, save, fyne.NewMenuItemSeparator(), exportPDF, exportPNG)
	return fyne.NewMainMenu(file)
}
