package boxes

// Content is the measurement contract of the content of cells and captions.
type Content interface {
	// IntrinsicWidths returns the min-content and max-content widths.
	IntrinsicWidths() (min, max int)
	// Layout lays out the content in the given width, returning its height
	// and the position of its first baseline (or -1 if there is no line box).
	Layout(width int) (height, baseline int)
}

// FixedContent is a content with the given dimensions,
// whatever the available width.
type FixedContent struct {
	MinWidth, MaxWidth int
	Height             int
	Baseline           int // -1 for no baseline
}

func (fc FixedContent) IntrinsicWidths() (int, int) { return fc.MinWidth, fc.MaxWidth }

func (fc FixedContent) Layout(int) (int, int) { return fc.Height, fc.Baseline }

// IntrinsicWidths supports a nil content.
func IntrinsicWidths(c Content) (min, max int) {
	if c == nil {
		return 0, 0
	}
	return c.IntrinsicWidths()
}

// LayoutContent supports a nil content, which has no baseline.
func LayoutContent(c Content, width int) (height, baseline int) {
	if c == nil {
		return 0, -1
	}
	return c.Layout(width)
}
