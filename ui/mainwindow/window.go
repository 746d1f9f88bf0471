// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"image/color"
	"path/filepath"

	"roompainter/internal/app"
	roomimage "roompainter/internal/image"
	"roompainter/internal/segmentation"
	"roompainter/internal/version"
	"roompainter/ui/canvas"
	"roompainter/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

const (
	prefKeyLastDir   = "lastDirectory"
	prefKeyLastImage = "lastImage"
)

// Overlay colors.
var (
	outlineColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	selectedColor = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	previewColor  = color.RGBA{R: 0, G: 200, B: 0, A: 255}
)

// Services bundles the external endpoints the window drives.
type Services struct {
	Uploader segmentation.Uploader
	Detector segmentation.Detector
	Advisor  segmentation.Advisor
}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	services  Services
	log       *logrus.Logger
	canvas    *canvas.WallCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	fitToWindowItem *fyne.MenuItem

	// showPreview keeps the translucent detection wash visible until the
	// first selection.
	showPreview bool
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, services Services, log *logrus.Logger) *MainWindow {
	win := fyneApp.NewWindow("Room Painter")

	if log == nil {
		log = logrus.StandardLogger()
	}

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		services: services,
		log:      log,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupPeekKey()
	mw.restoreLastImage()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewWallCanvas()
	mw.canvas.OnTap(func(x, y float64) {
		mw.state.ActivateAt(x, y)
	})

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Open a room photo to start")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.onZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.onZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.onToggleFitToWindow()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.onActualSize()
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
		widget.NewLabel("Hold Space to compare with the original"),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Photo...", mw.onOpenPhoto),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Result...", mw.onExport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.state.Undo),
		fyne.NewMenuItem("Redo", mw.state.Redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Remove All Paint", mw.state.ClearOverlays),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Detect Walls", mw.onDetectWalls),
		fyne.NewMenuItem("Analyze Decoration", mw.onAnalyze),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Room Painter - " + filepath.Base(path))
			mw.updateStatus("Photo loaded: " + path)
		}
		mw.showPreview = false
		mw.canvas.ClearAllOverlays()
	})

	mw.state.On(app.EventCanvasUpdated, func(data interface{}) {
		mw.canvas.SetImage(mw.state.CurrentCanvas())
	})

	mw.state.On(app.EventRegionsDetected, func(data interface{}) {
		mw.showPreview = true
		mw.syncOverlays()
		if n, ok := data.(int); ok {
			mw.updateStatus(fmt.Sprintf("Detected %d wall segments. Tap a wall to select it.", n))
		}
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		mw.showPreview = false
		mw.syncOverlays()
		if id, ok := data.(string); ok && id != "" {
			mw.updateStatus("Selected wall " + id)
		}
	})

	mw.state.On(app.EventError, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.log.WithError(err).Warn("session error")
			mw.updateStatus("Error: " + err.Error())
		}
	})
}

// setupPeekKey maps holding Space to the before/after comparison.
func (mw *MainWindow) setupPeekKey() {
	deskCanvas, ok := mw.Canvas().(desktop.Canvas)
	if !ok {
		return
	}
	deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeySpace {
			mw.state.PeekOriginal(true)
		}
	})
	deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeySpace {
			mw.state.PeekOriginal(false)
		}
	})
}

// syncOverlays rebuilds the region overlay from the current session.
func (mw *MainWindow) syncOverlays() {
	regions := mw.state.Regions()
	if len(regions) == 0 {
		mw.canvas.ClearAllOverlays()
		return
	}

	selectedID := mw.state.SelectedID()
	overlay := &canvas.Overlay{}
	for _, reg := range regions {
		ro := canvas.RegionOverlay{
			Boundary: reg.Boundary,
			Color:    outlineColor,
		}
		if mw.showPreview {
			ro.Color = previewColor
			ro.Filled = true
			ro.FillAlpha = 77
		}
		if reg.ID == selectedID {
			ro.Color = selectedColor
			ro.Filled = false
		}
		overlay.Regions = append(overlay.Regions, ro)
	}
	mw.canvas.SetOverlay("regions", overlay)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// restoreLastImage reloads the previously opened photo.
func (mw *MainWindow) restoreLastImage() {
	path := mw.app.Preferences().String(prefKeyLastImage)
	if path == "" {
		return
	}
	if err := mw.loadPhoto(path); err != nil {
		mw.log.WithError(err).WithField("path", path).Warn("could not restore last photo")
	}
}

func (mw *MainWindow) loadPhoto(path string) error {
	photo, err := roomimage.Load(path)
	if err != nil {
		return err
	}
	mw.state.SetImage(photo.RGBA, path)
	mw.app.Preferences().SetString(prefKeyLastImage, path)
	return nil
}

// Menu action handlers

func (mw *MainWindow) onOpenPhoto() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.loadPhoto(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(roomimage.SupportedExtensions()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExport() {
	if mw.state.BaseImage() == nil {
		mw.updateStatus("Nothing to export")
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if ext := filepath.Ext(path); ext == "" {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := roomimage.Export(mw.state.CurrentCanvas(), path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("painted.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// onDetectWalls uploads the photo (once) and runs wall detection. Service
// calls run off the UI loop; results land through state events.
func (mw *MainWindow) onDetectWalls() {
	if mw.state.BaseImage() == nil {
		mw.updateStatus("Open a photo first")
		return
	}
	if mw.services.Detector == nil {
		mw.updateStatus("No detection service configured")
		return
	}

	mw.updateStatus("Detecting walls...")
	go func() {
		ctx := context.Background()

		imageID := mw.state.ImageID
		if imageID == "" {
			photo := &roomimage.Photo{Path: mw.state.ImagePath}
			data, err := photo.Bytes()
			if err != nil {
				mw.reportServiceError("upload", err)
				return
			}
			imageID, err = mw.services.Uploader.Upload(ctx, data, filepath.Base(photo.Path))
			if err != nil {
				mw.reportServiceError("upload", err)
				return
			}
			mw.state.SetImageID(imageID)
		}

		raws, err := mw.services.Detector.DetectWalls(ctx, imageID)
		if err != nil {
			mw.reportServiceError("detection", err)
			return
		}
		if err := mw.state.SetRegions(raws); err != nil {
			mw.reportServiceError("detection", err)
		}
	}()
}

// onAnalyze requests the decoration critique.
func (mw *MainWindow) onAnalyze() {
	if mw.state.BaseImage() == nil {
		mw.updateStatus("Open a photo first")
		return
	}
	if mw.services.Advisor == nil {
		mw.updateStatus("No analysis service configured")
		return
	}
	if mw.state.ImageID == "" {
		mw.updateStatus("Run Detect Walls first to upload the photo")
		return
	}

	mw.updateStatus("Analyzing decoration...")
	go func() {
		analysis, err := mw.services.Advisor.Analyze(context.Background(), mw.state.ImageID)
		if err != nil {
			mw.reportServiceError("analysis", err)
			return
		}
		mw.sidePanel.ShowAnalysis(analysis)
		mw.state.Emit(app.EventAnalysisReady, analysis)
		mw.updateStatus("Analysis ready")
	}()
}

func (mw *MainWindow) reportServiceError(stage string, err error) {
	mw.log.WithError(err).WithField("stage", stage).Error("service call failed")
	mw.updateStatus(fmt.Sprintf("%s failed: %v", stage, err))
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.FitEnabled()
	mw.canvas.SetFitToWindow(enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.FitEnabled() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Room Painter",
		fmt.Sprintf("Room Painter v%s\n\n"+
			"Preview paint colors and wallpaper on your own room photos.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
