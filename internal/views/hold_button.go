package views

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"productive-lock/internal/hold"
)

const (
	HoldCaption = "Hold to activate..."

	buttonPadX      = 30
	buttonPadY      = 15
	buttonRadius    = 25
	progressHeight  = 4
	captionGap      = 10
	titleTextSize   = 18
	captionTextSize = 14
)

var (
	_ desktop.Mouseable = (*HoldButton)(nil)
	_ mobile.Touchable  = (*HoldButton)(nil)
)

// HoldButton draws a hold.Control: fill colour and the bottom strip follow
// progress, the whole button follows scale. Mouse and touch presses feed the
// control.
type HoldButton struct {
	widget.BaseWidget

	title       string
	control     *hold.Control
	unsubscribe func()

	mu   sync.RWMutex
	snap hold.Snapshot
}

func NewHoldButton(title string, control *hold.Control) *HoldButton {
	b := &HoldButton{
		title:   title,
		control: control,
		snap:    control.Snapshot(),
	}
	b.unsubscribe = control.Subscribe(b.onSnapshot)
	b.ExtendBaseWidget(b)
	return b
}

func (b *HoldButton) Control() *hold.Control {
	return b.control
}

// Snapshot returns the state last drawn by the button.
func (b *HoldButton) Snapshot() hold.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Close detaches the button and cancels anything its control has pending.
func (b *HoldButton) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	b.control.Close()
}

func (b *HoldButton) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	b.control.PressBegin()
}

func (b *HoldButton) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	b.control.PressEnd()
}

func (b *HoldButton) TouchDown(*mobile.TouchEvent) {
	b.control.PressBegin()
}

func (b *HoldButton) TouchUp(*mobile.TouchEvent) {
	b.control.PressEnd()
}

// TouchCancel fires when the gesture is taken over (scroll, system UI); it
// counts as an early release.
func (b *HoldButton) TouchCancel(*mobile.TouchEvent) {
	b.control.PressEnd()
}

func (b *HoldButton) onSnapshot(s hold.Snapshot) {
	b.mu.Lock()
	b.snap = s
	b.mu.Unlock()
	b.Refresh()
}

func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(ColorIdle)
	background.CornerRadius = buttonRadius

	track := canvas.NewRectangle(ColorTrack)
	bar := canvas.NewRectangle(ColorProgressBar)

	label := canvas.NewText(b.title, ColorOnButton)
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = titleTextSize
	label.Alignment = fyne.TextAlignCenter

	caption := canvas.NewText(HoldCaption, ColorMuted)
	caption.TextSize = captionTextSize
	caption.Alignment = fyne.TextAlignCenter

	r := &holdButtonRenderer{
		button:     b,
		background: background,
		track:      track,
		bar:        bar,
		label:      label,
		caption:    caption,
		objects:    []fyne.CanvasObject{background, track, bar, label, caption},
	}
	r.Refresh()
	return r
}

type holdButtonRenderer struct {
	button     *HoldButton
	background *canvas.Rectangle
	track      *canvas.Rectangle
	bar        *canvas.Rectangle
	label      *canvas.Text
	caption    *canvas.Text
	objects    []fyne.CanvasObject
}

func (r *holdButtonRenderer) faceSize() fyne.Size {
	text := r.label.MinSize()
	return fyne.NewSize(text.Width+2*buttonPadX, text.Height+2*buttonPadY)
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	face := r.faceSize()
	caption := r.caption.MinSize()
	// CelebrationScale headroom keeps the pulse inside our bounds.
	width := fyne.Max(face.Width*hold.CelebrationScale, caption.Width)
	height := face.Height*hold.CelebrationScale + captionGap + caption.Height
	return fyne.NewSize(width, height)
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	snap := r.button.Snapshot()

	caption := r.caption.MinSize()
	faceArea := fyne.NewSize(size.Width, size.Height-captionGap-caption.Height)

	base := r.faceSize()
	face := fyne.NewSize(base.Width*snap.Scale, base.Height*snap.Scale)
	origin := fyne.NewPos((faceArea.Width-face.Width)/2, (faceArea.Height-face.Height)/2)

	r.background.Move(origin)
	r.background.Resize(face)
	r.background.CornerRadius = buttonRadius * snap.Scale

	label := r.label.MinSize()
	r.label.Move(fyne.NewPos(origin.X, origin.Y+(face.Height-label.Height)/2))
	r.label.Resize(fyne.NewSize(face.Width, label.Height))

	// the strip sits inside the rounded corners
	inset := r.background.CornerRadius / 2
	stripWidth := face.Width - 2*inset
	stripPos := fyne.NewPos(origin.X+inset, origin.Y+face.Height-progressHeight)
	r.track.Move(stripPos)
	r.track.Resize(fyne.NewSize(stripWidth, progressHeight))
	r.bar.Move(stripPos)
	r.bar.Resize(fyne.NewSize(stripWidth*snap.Progress, progressHeight))

	r.caption.Move(fyne.NewPos(0, faceArea.Height+captionGap))
	r.caption.Resize(fyne.NewSize(size.Width, caption.Height))
}

func (r *holdButtonRenderer) Refresh() {
	snap := r.button.Snapshot()
	holding := snap.State == hold.Holding

	r.background.FillColor = ButtonColor(snap.Progress)
	setVisible(r.track, holding)
	setVisible(r.bar, holding)
	setVisible(r.caption, holding)

	r.Layout(r.button.Size())
	for _, o := range r.objects {
		o.Refresh()
	}
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *holdButtonRenderer) Destroy() {}

func setVisible(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}
