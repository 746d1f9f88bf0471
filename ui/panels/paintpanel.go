package panels

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"roompainter/internal/app"
	"roompainter/internal/compositor"
	"roompainter/internal/palette"
	"roompainter/pkg/colorutil"
)

// presetHexes is the built-in paint chart shown as swatches.
var presetHexes = []string{
	"#F5F0E1", "#EDE3CF", "#E8D8B7", "#D9C8A9", // warm neutrals
	"#DDE5D5", "#C8D6C0", "#A9C1A4", "#8FAE8B", // greens
	"#D6E2EA", "#BCD2E0", "#9FBCD1", "#7FA3BE", // blues
	"#EADCE2", "#DCC2CE", "#C8A2B4", "#B085A0", // roses
	"#E6E6E6", "#CCCCCC", "#A8A8A8", "#7F7F7F", // greys
}

// PaintPanel offers fill selection and session controls.
type PaintPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	selectionLabel *widget.Label
	lightingLabel  *widget.Label
	hexEntry       *widget.Entry
	undoButton     *widget.Button
	redoButton     *widget.Button
	clearButton    *widget.Button
	suggestBox     *fyne.Container
}

// NewPaintPanel creates the paint tab.
func NewPaintPanel(state *app.State) *PaintPanel {
	pp := &PaintPanel{state: state}

	pp.selectionLabel = widget.NewLabel("No wall selected")
	pp.selectionLabel.Wrapping = fyne.TextWrapWord
	pp.lightingLabel = widget.NewLabel("")
	pp.lightingLabel.Wrapping = fyne.TextWrapWord

	swatchGrid := container.NewGridWithColumns(4)
	for _, hex := range presetHexes {
		hex := hex
		sw := newColorSwatch(mustParse(hex), func() {
			pp.applyHex(hex)
		})
		swatchGrid.Add(sw)
	}

	pp.hexEntry = widget.NewEntry()
	pp.hexEntry.SetPlaceHolder("#RRGGBB")
	applyHexButton := widget.NewButton("Apply", func() {
		pp.applyHex(pp.hexEntry.Text)
	})
	hexRow := container.NewBorder(nil, nil, nil, applyHexButton, pp.hexEntry)

	wallpaperButton := widget.NewButton("Wallpaper...", func() {
		pp.pickWallpaper()
	})

	pp.suggestBox = container.NewGridWithColumns(4)
	suggestButton := widget.NewButton("Suggest colors", func() {
		pp.suggest()
	})

	pp.undoButton = widget.NewButton("Undo", func() { state.Undo() })
	pp.redoButton = widget.NewButton("Redo", func() { state.Redo() })
	pp.clearButton = widget.NewButton("Remove All", func() { state.ClearOverlays() })
	historyRow := container.NewGridWithColumns(3, pp.undoButton, pp.redoButton, pp.clearButton)

	pp.container = container.NewVBox(
		pp.selectionLabel,
		pp.lightingLabel,
		widget.NewSeparator(),
		widget.NewLabel("Paint colors"),
		swatchGrid,
		hexRow,
		wallpaperButton,
		widget.NewSeparator(),
		suggestButton,
		pp.suggestBox,
		widget.NewSeparator(),
		historyRow,
	)

	state.On(app.EventSelectionChanged, func(data interface{}) {
		pp.updateSelection()
	})
	state.On(app.EventHistoryChanged, func(data interface{}) {
		pp.updateHistoryButtons()
	})
	state.On(app.EventRegionsDetected, func(data interface{}) {
		pp.updateSelection()
		pp.updateHistoryButtons()
	})
	pp.updateHistoryButtons()

	return pp
}

// Container returns the panel container.
func (pp *PaintPanel) Container() fyne.CanvasObject {
	return pp.container
}

// SetWindow sets the parent window for dialogs.
func (pp *PaintPanel) SetWindow(w fyne.Window) {
	pp.window = w
}

func (pp *PaintPanel) applyHex(hex string) {
	fill, err := compositor.SolidHex(hex)
	if err != nil {
		if pp.window != nil {
			dialog.ShowError(err, pp.window)
		}
		return
	}
	if err := pp.state.SetFill(fill); err != nil && pp.window != nil {
		dialog.ShowError(err, pp.window)
	}
}

func (pp *PaintPanel) pickWallpaper() {
	if pp.window == nil {
		return
	}
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		fill, err := compositor.LoadPattern(path)
		if err != nil {
			dialog.ShowError(err, pp.window)
			return
		}
		if err := pp.state.SetFill(fill); err != nil {
			dialog.ShowError(err, pp.window)
		}
	}, pp.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	fd.Show()
}

// suggest derives paint recommendations from the loaded photo and shows them
// as tappable swatches.
func (pp *PaintPanel) suggest() {
	base := pp.state.BaseImage()
	if base == nil {
		return
	}

	swatches := palette.Recommend(base, pp.state.Regions(), 8)
	pp.suggestBox.RemoveAll()
	for _, sw := range swatches {
		hex := sw.Hex
		pp.suggestBox.Add(newColorSwatch(mustParse(hex), func() {
			pp.applyHex(hex)
		}))
	}
	pp.suggestBox.Refresh()
}

func (pp *PaintPanel) updateSelection() {
	reg, ok := pp.state.SelectedRegion()
	if !ok {
		pp.selectionLabel.SetText("No wall selected")
		pp.lightingLabel.SetText("")
		return
	}

	pp.selectionLabel.SetText(fmt.Sprintf("Selected wall %s (confidence %.0f%%)", reg.ID, reg.Confidence*100))

	base := pp.state.BaseImage()
	if base == nil {
		return
	}
	stats := compositor.RegionLighting(base, reg)
	if stats.Pixels == 0 {
		pp.lightingLabel.SetText("")
		return
	}
	pp.lightingLabel.SetText(fmt.Sprintf("Lighting: %.0f%% bright, ±%.0f%% variation",
		stats.MeanValue*100, stats.StdDevValue*100))
}

func (pp *PaintPanel) updateHistoryButtons() {
	if pp.state.CanUndo() {
		pp.undoButton.Enable()
	} else {
		pp.undoButton.Disable()
	}
	if pp.state.CanRedo() {
		pp.redoButton.Enable()
	} else {
		pp.redoButton.Disable()
	}
	if pp.state.PaintedCount() > 0 {
		pp.clearButton.Enable()
	} else {
		pp.clearButton.Disable()
	}
}

func mustParse(hex string) color.RGBA {
	c, err := colorutil.ParseHex(hex)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return c
}

// colorSwatch is a small tappable color tile.
type colorSwatch struct {
	widget.BaseWidget
	rect     *fynecanvas.Rectangle
	onTapped func()
}

func newColorSwatch(col color.RGBA, onTapped func()) *colorSwatch {
	cs := &colorSwatch{
		rect:     fynecanvas.NewRectangle(col),
		onTapped: onTapped,
	}
	cs.rect.SetMinSize(fyne.NewSize(36, 28))
	cs.ExtendBaseWidget(cs)
	return cs
}

func (cs *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if cs.onTapped != nil {
		cs.onTapped()
	}
}

func (cs *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cs.rect)
}
