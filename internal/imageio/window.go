package imageio

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/born-ml/segkit/internal/tensor"
)

// Window is a grid.Sink that shows images in an OpenCV window and writes
// PNG files.
//
// The window is opened on the first Show and reused until Close.
type Window struct {
	// Delay is passed to WaitKey after each Show: 0 blocks until a key is
	// pressed, a positive value waits that many milliseconds.
	Delay int

	mu     sync.Mutex
	window *gocv.Window
}

// NewWindow returns a Window that waits for a key press after each Show.
func NewWindow() *Window {
	return &Window{}
}

// WritePNG implements grid.Sink.
func (w *Window) WritePNG(path string, img *tensor.RawTensor) error {
	return WritePNG(path, img)
}

// Show implements grid.Sink.
func (w *Window) Show(title string, img *tensor.RawTensor) error {
	mat, err := toMat(img)
	if err != nil {
		return err
	}
	defer mat.Close()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window == nil {
		w.window = gocv.NewWindow(title)
	} else {
		w.window.SetWindowTitle(title)
	}
	w.window.IMShow(mat)
	w.window.WaitKey(w.Delay)

	return nil
}

// Close destroys the window if one was opened.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window == nil {
		return nil
	}
	err := w.window.Close()
	w.window = nil
	return err
}
