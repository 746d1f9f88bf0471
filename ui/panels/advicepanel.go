package panels

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"roompainter/internal/segmentation"
)

// AdvicePanel shows the decoration critique for the loaded photo. It is
// display-only; nothing here feeds back into compositing.
type AdvicePanel struct {
	container fyne.CanvasObject

	statusLabel     *widget.Label
	backgroundLabel *widget.Label
	goodLabel       *widget.Label
	badLabel        *widget.Label
	suggestLabel    *widget.Label
}

// NewAdvicePanel creates the advice tab.
func NewAdvicePanel() *AdvicePanel {
	ap := &AdvicePanel{
		statusLabel:     widget.NewLabel("No analysis yet. Run Tools > Analyze Decoration."),
		backgroundLabel: widget.NewLabel(""),
		goodLabel:       widget.NewLabel(""),
		badLabel:        widget.NewLabel(""),
		suggestLabel:    widget.NewLabel(""),
	}
	for _, l := range []*widget.Label{ap.statusLabel, ap.backgroundLabel, ap.goodLabel, ap.badLabel, ap.suggestLabel} {
		l.Wrapping = fyne.TextWrapWord
	}

	ap.container = container.NewVScroll(container.NewVBox(
		ap.statusLabel,
		ap.backgroundLabel,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Working well", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ap.goodLabel,
		widget.NewLabelWithStyle("Could improve", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ap.badLabel,
		widget.NewLabelWithStyle("Suggestions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		ap.suggestLabel,
	))

	return ap
}

// Container returns the panel container.
func (ap *AdvicePanel) Container() fyne.CanvasObject {
	return ap.container
}

// SetAnalysis fills the panel with a critique.
func (ap *AdvicePanel) SetAnalysis(analysis *segmentation.Analysis) {
	if analysis == nil {
		ap.statusLabel.SetText("No analysis yet. Run Tools > Analyze Decoration.")
		ap.backgroundLabel.SetText("")
		ap.goodLabel.SetText("")
		ap.badLabel.SetText("")
		ap.suggestLabel.SetText("")
		return
	}

	ap.statusLabel.SetText("")
	ap.backgroundLabel.SetText(analysis.Background)
	ap.goodLabel.SetText(bulletList(analysis.GoodPoints))
	ap.badLabel.SetText(bulletList(analysis.BadPoints))
	ap.suggestLabel.SetText(bulletList(analysis.Suggestions))
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString("• ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
