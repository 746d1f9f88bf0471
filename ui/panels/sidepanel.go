// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"roompainter/internal/app"
	"roompainter/internal/segmentation"
	"roompainter/ui/canvas"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.WallCanvas
	container *container.AppTabs

	paintPanel  *PaintPanel
	advicePanel *AdvicePanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.WallCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	sp.paintPanel = NewPaintPanel(state)
	sp.advicePanel = NewAdvicePanel()

	sp.container = container.NewAppTabs(
		container.NewTabItem("Paint", sp.paintPanel.Container()),
		container.NewTabItem("Advice", sp.advicePanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.paintPanel.SetWindow(w)
}

// ShowAnalysis displays a decoration critique in the advice tab and switches
// to it.
func (sp *SidePanel) ShowAnalysis(analysis *segmentation.Analysis) {
	sp.advicePanel.SetAnalysis(analysis)
	sp.container.SelectIndex(1)
}
