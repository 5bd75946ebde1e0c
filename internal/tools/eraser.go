package tools

// Eraser defaults. The eraser paints with the board background.
const (
	DefaultEraserColor    = "#ffffff"
	DefaultEraserMinWidth = float32(20)
)

// EraserTool is a pencil that always paints in the background color and
// never goes thinner than MinWidth.
type EraserTool struct {
	*PencilTool

	Background string
	MinWidth   float32
}

var _ Tool = (*EraserTool)(nil)

// NewEraserTool returns an eraser with the default background and width.
func NewEraserTool(opts ...PencilOption) *EraserTool {
	return &EraserTool{
		PencilTool: NewPencilTool(opts...),
		Background: DefaultEraserColor,
		MinWidth:   DefaultEraserMinWidth,
	}
}

// ApplyOptions keeps the requested width when it is wide enough and ignores
// the requested color.
func (e *EraserTool) ApplyOptions(o Options) {
	e.PencilTool.ApplyOptions(Options{
		LineWidth: max(o.LineWidth, e.MinWidth),
		Color:     e.Background,
	})
}
