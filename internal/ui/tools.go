package ui

import (
	"image/color"

	"LocalBoard/internal/tools"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Palette is the set of swatches offered in the toolbar.
var Palette = []string{"#000000", "#ff0000", "#00ff00", "#0000ff", "#ffff00"}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(parseColor(s.Hex))
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// Toolbar drives a tool manager from buttons, swatches and a width slider.
type Toolbar struct {
	manager *tools.Manager
	slider  *widget.Slider

	// OnClear is called when the user asks to wipe their strokes.
	OnClear func()
}

// NewToolbar builds the toolbar for m. Options start from m's current
// options.
func NewToolbar(m *tools.Manager) *Toolbar {
	t := &Toolbar{manager: m}
	t.slider = widget.NewSlider(1.0, 50.0)
	t.slider.SetValue(float64(m.Options().LineWidth))
	t.slider.OnChanged = func(val float64) { t.SetWidth(float32(val)) }
	return t
}

// SelectTool switches to the named tool.
func (t *Toolbar) SelectTool(name string) error {
	return t.manager.Select(name)
}

// SetColor changes the stroke color for the active and future tools.
func (t *Toolbar) SetColor(hex string) {
	o := t.manager.Options()
	o.Color = hex
	t.manager.SetOptions(o)
}

// SetWidth changes the stroke width for the active and future tools.
func (t *Toolbar) SetWidth(w float32) {
	o := t.manager.Options()
	o.LineWidth = w
	t.manager.SetOptions(o)
}

// Object lays the toolbar out.
func (t *Toolbar) Object() fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			_ = t.SelectTool(tools.NamePencil)
		}), // Pencil
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			_ = t.SelectTool(tools.NameEraser)
		}), // Eraser
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			if t.OnClear != nil {
				t.OnClear()
			}
		}), // Clear my strokes
	)

	swatches := make([]fyne.CanvasObject, 0, len(Palette))
	for _, hex := range Palette {
		swatches = append(swatches, newColorSwatch(hex, t.SetColor))
	}

	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.slider)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		container.NewHBox(swatches...),
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}
