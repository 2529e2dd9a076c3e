package layout

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Horizontal centers every object in an equally wide cell.
type Horizontal struct{}

func (l *Horizontal) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	width := size.Width / float32(len(objects))
	for i, o := range objects {
		o.Resize(fyne.NewSize(o.MinSize().Width, o.MinSize().Height))
		o.Move(fyne.NewPos(float32(i)*width+width*.5-o.MinSize().Width*.5, (size.Height-o.MinSize().Height)*.5))
	}
}

func (l *Horizontal) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, o := range objects {
		width += o.MinSize().Width
		if o.MinSize().Height > height {
			height = o.MinSize().Height
		}
	}
	return fyne.NewSize(width, height)
}

// Square gives every object the largest centered square that fits.
type Square struct{}

func NewSquare(obj fyne.CanvasObject) *fyne.Container {
	return container.New(&Square{}, obj)
}

func (l *Square) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	side := min(size.Width, size.Height)
	for _, o := range objects {
		o.Resize(fyne.NewSize(side, side))
		o.Move(fyne.NewPos((size.Width-side)*.5, (size.Height-side)*.5))
	}
}

func (l *Square) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var side float32
	for _, o := range objects {
		side = max(side, o.MinSize().Width, o.MinSize().Height)
	}
	return fyne.NewSize(side, side)
}

// NewHPadded insets obj by pad on the left and right.
func NewHPadded(pad float32, obj fyne.CanvasObject) *fyne.Container {
	return container.New(&hPadded{pad: pad}, obj)
}

type hPadded struct {
	pad float32
}

func (d *hPadded) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var w, h float32
	for _, o := range objects {
		s := o.MinSize()
		w = max(w, s.Width)
		h = max(h, s.Height)
	}
	return fyne.NewSize(w+2*d.pad, h)
}

func (d *hPadded) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(d.pad, 0))
		o.Resize(fyne.NewSize(max(0, size.Width-2*d.pad), size.Height))
	}
}
