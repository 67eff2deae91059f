package termio

// Canvas represents a surface on which a widget can draw.
type Canvas interface {
	// Get the dimensions of this canvas.
	GetDimensions() (uint, uint)
	// Write a chunk to the canvas.
	Write(x, y uint, text FormattedText)
}

// Widget is an abstract entity which can be rendered onto a Canvas.
type Widget interface {
	// Render this widget on the given canvas.
	Render(canvas Canvas)
}
