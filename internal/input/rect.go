package input

// Rect matches RECT. No ordering between the edges is enforced.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width returns Right-Left, which is negative for an inverted rectangle.
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height returns Bottom-Top, which is negative for an inverted rectangle.
func (r Rect) Height() int32 { return r.Bottom - r.Top }
