package presenter

import (
	"context"
	"image"

	"github.com/soocke/pixel-crop-go/domain/geometry"
	"github.com/soocke/pixel-crop-go/domain/selection"
	"github.com/soocke/pixel-crop-go/ui/model"
)

// SelectionMachine narrows the selection state machine to what presenters drive.
type SelectionMachine interface {
	selection.PointerHandler
	SetSurface(selection.Surface)
	SetTransform(geometry.Transform)
	Unload()
	Transform() (geometry.Transform, bool)
	Committed() (geometry.Rect, bool)
	Feedback() (geometry.Rect, bool)
	AddListener(selection.StateListener)
	Commit(region image.Rectangle) (geometry.Rect, error)
	Busy() bool
	SetBusy(bool)
}

// ImageProcessor is the pixel work the presenters schedule.
type ImageProcessor interface {
	Load(ctx context.Context, path string) (image.Image, error)
	Crop(src image.Image, region image.Rectangle) (image.Image, error)
	Resize(ctx context.Context, src image.Image, factor float64) (image.Image, error)
	Suggest(ctx context.Context, src image.Image, w, h int) (image.Rectangle, error)
	Save(img image.Image, path string) (string, int64, error)
	ClampScale(factor float64) float64
}

// ScreenGrabber captures the screen as a new source image.
type ScreenGrabber interface {
	Grab() (*image.RGBA, error)
}

// StatusView shows one line of status text.
type StatusView interface{ SetStatus(string) }

// OriginalView displays the rendered original image canvas.
type OriginalView interface {
	ShowOriginal(img image.Image)
}

// PreviewView displays the cropped and resized previews and the scale label.
type PreviewView interface {
	ShowPreview(kind model.Kind, img image.Image)
	SetScaleLabel(string)
}

// InfoView shows the description of the loaded image.
type InfoView interface{ SetInfo(string) }

// Dialogs wraps the modal file pickers and message boxes.
type Dialogs interface {
	AskOpenPath(initialDir string) string
	AskSavePath(kind model.Kind, initialDir string) string
	ShowInfo(title, msg string)
	ShowWarning(title, msg string)
	ShowError(title, msg string)
}
