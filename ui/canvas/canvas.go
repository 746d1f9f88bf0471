package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// WallCanvas displays the composited room photo with pan, zoom, and region
// overlays. Taps are reported in image coordinates.
type WallCanvas struct {
	widget.BaseWidget

	img      *image.RGBA
	overlays map[string]*Overlay

	raster *fynecanvas.Raster
	zoom   float64

	scroll  *zoomScroll
	content *tappableContent
	imgSize fyne.Size

	fitToWindow    bool
	lastScrollSize fyne.Size

	onZoomChange func(zoom float64)
	onTap        func(x, y float64) // image coordinates
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *WallCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *WallCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// tappableContent wraps the raster to handle mouse events.
type tappableContent struct {
	widget.BaseWidget
	canvas *WallCanvas
	raster *fynecanvas.Raster
}

func newTappableContent(wc *WallCanvas, raster *fynecanvas.Raster) *tappableContent {
	tc := &tappableContent{canvas: wc, raster: raster}
	tc.ExtendBaseWidget(tc)
	return tc
}

func (tc *tappableContent) CreateRenderer() fyne.WidgetRenderer {
	return &tappableContentRenderer{content: tc}
}

func (tc *tappableContent) MinSize() fyne.Size {
	return tc.raster.MinSize()
}

func (tc *tappableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		tc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		tc.canvas.ZoomOut()
	}
}

// Tapped reports the tap in image coordinates.
func (tc *tappableContent) Tapped(ev *fyne.PointEvent) {
	if tc.canvas.onTap == nil {
		return
	}

	// Reject clicks outside widget bounds; some event paths deliver them.
	size := tc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	scrollOffset := tc.canvas.scroll.Offset()
	canvasX := float64(ev.Position.X + scrollOffset.X)
	canvasY := float64(ev.Position.Y + scrollOffset.Y)

	tc.canvas.onTap(canvasX/tc.canvas.zoom, canvasY/tc.canvas.zoom)
}

type tappableContentRenderer struct {
	content *tappableContent
}

func (r *tappableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *tappableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *tappableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *tappableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *tappableContentRenderer) Destroy() {}

// NewWallCanvas creates an empty canvas.
func NewWallCanvas() *WallCanvas {
	wc := &WallCanvas{
		zoom:     1.0,
		imgSize:  fyne.NewSize(400, 300),
		overlays: make(map[string]*Overlay),
	}

	wc.raster = fynecanvas.NewRaster(wc.draw)
	wc.raster.ScaleMode = fynecanvas.ImageScalePixels
	wc.raster.SetMinSize(wc.imgSize)

	wc.content = newTappableContent(wc, wc.raster)
	wc.scroll = newZoomScroll(wc.content, wc)

	wc.ExtendBaseWidget(wc)
	return wc
}

// Container returns the canvas container for embedding in layouts.
func (wc *WallCanvas) Container() fyne.CanvasObject {
	return wc.scroll
}

// SetImage sets the raster to display.
func (wc *WallCanvas) SetImage(img *image.RGBA) {
	wc.img = img
	wc.updateContentSize()
}

// SetOverlay installs an overlay under the given name.
func (wc *WallCanvas) SetOverlay(name string, overlay *Overlay) {
	wc.overlays[name] = overlay
	wc.Refresh()
}

// ClearOverlay removes an overlay by name.
func (wc *WallCanvas) ClearOverlay(name string) {
	delete(wc.overlays, name)
	wc.Refresh()
}

// ClearAllOverlays removes all overlays.
func (wc *WallCanvas) ClearAllOverlays() {
	wc.overlays = make(map[string]*Overlay)
	wc.Refresh()
}

// SetZoom sets the zoom level, clamped to the legal range.
func (wc *WallCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	wc.zoom = zoom
	wc.updateContentSize()

	if wc.onZoomChange != nil {
		wc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (wc *WallCanvas) Zoom() float64 {
	return wc.zoom
}

// ZoomIn increases the zoom level.
func (wc *WallCanvas) ZoomIn() {
	wc.SetZoom(wc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (wc *WallCanvas) ZoomOut() {
	wc.SetZoom(wc.zoom / zoomStep)
}

// FitToWindow adjusts zoom so the whole photo is visible.
func (wc *WallCanvas) FitToWindow() {
	if wc.img == nil {
		return
	}
	bounds := wc.img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	viewSize := wc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	wc.SetZoom(zoom * 0.95)
}

// SetFitToWindow enables or disables auto-fit on resize.
func (wc *WallCanvas) SetFitToWindow(fit bool) {
	wc.fitToWindow = fit
	if fit {
		wc.FitToWindow()
	}
}

// FitEnabled returns the current fit-to-window state.
func (wc *WallCanvas) FitEnabled() bool {
	return wc.fitToWindow
}

// CheckResize auto-fits after a scroll container resize when enabled.
func (wc *WallCanvas) CheckResize(size fyne.Size) {
	if !wc.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != wc.lastScrollSize {
		wc.lastScrollSize = size
		wc.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (wc *WallCanvas) OnZoomChange(callback func(zoom float64)) {
	wc.onZoomChange = callback
}

// OnTap sets a callback for taps. Coordinates are in image space.
func (wc *WallCanvas) OnTap(callback func(x, y float64)) {
	wc.onTap = callback
}

// Refresh refreshes the canvas display.
func (wc *WallCanvas) Refresh() {
	wc.raster.Refresh()
}

func (wc *WallCanvas) updateContentSize() {
	if wc.img == nil || wc.img.Bounds().Dx() == 0 {
		wc.imgSize = fyne.NewSize(400, 300)
	} else {
		bounds := wc.img.Bounds()
		wc.imgSize = fyne.NewSize(
			float32(float64(bounds.Dx())*wc.zoom),
			float32(float64(bounds.Dy())*wc.zoom),
		)
	}

	wc.raster.SetMinSize(wc.imgSize)
	wc.raster.Resize(wc.imgSize)
	if wc.content != nil {
		wc.content.Resize(wc.imgSize)
		wc.content.Refresh()
	}
	wc.raster.Refresh()
	if wc.scroll != nil {
		wc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (wc *WallCanvas) draw(w, h int) image.Image {
	currentSize := fyne.NewSize(float32(w), float32(h))
	if wc.fitToWindow && currentSize != wc.lastScrollSize && w > 0 && h > 0 {
		wc.lastScrollSize = currentSize
		// Schedule fit after this draw completes
		go func() {
			wc.FitToWindow()
		}()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}

	if wc.img != nil {
		wc.drawPhoto(output, w, h)
	}

	for _, overlay := range wc.overlays {
		if overlay != nil {
			wc.drawOverlay(output, overlay)
		}
	}

	return output
}

// drawPhoto scales the image into the output with nearest-neighbor sampling.
func (wc *WallCanvas) drawPhoto(output *image.RGBA, w, h int) {
	src := wc.img
	srcBounds := src.Bounds()

	for y := 0; y < h; y++ {
		srcY := int(float64(y)/wc.zoom) + srcBounds.Min.Y
		if srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			srcX := int(float64(x)/wc.zoom) + srcBounds.Min.X
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X {
				continue
			}

			si := src.PixOffset(srcX, srcY)
			di := output.PixOffset(x, y)
			output.Pix[di] = src.Pix[si]
			output.Pix[di+1] = src.Pix[si+1]
			output.Pix[di+2] = src.Pix[si+2]
		}
	}
}

// ImageToCanvas converts image coordinates to canvas coordinates.
func (wc *WallCanvas) ImageToCanvas(imgX, imgY float64) (canvasX, canvasY float64) {
	return imgX * wc.zoom, imgY * wc.zoom
}

// CanvasToImage converts canvas coordinates to image coordinates.
func (wc *WallCanvas) CanvasToImage(canvasX, canvasY float64) (imgX, imgY float64) {
	return canvasX / wc.zoom, canvasY / wc.zoom
}

// CreateRenderer implements fyne.Widget.
func (wc *WallCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &wallCanvasRenderer{canvas: wc}
}

type wallCanvasRenderer struct {
	canvas *WallCanvas
}

func (r *wallCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
	r.canvas.CheckResize(size)
}

func (r *wallCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *wallCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *wallCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *wallCanvasRenderer) Destroy() {}
