package view

import (
	"github.com/soocke/pixel-crop-go/domain/imageproc"
	"github.com/soocke/pixel-crop-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Dialogs shows the native Tk file pickers and message boxes.
type Dialogs struct{}

// NewDialogs returns the Tk dialog provider.
func NewDialogs() *Dialogs { return &Dialogs{} }

// AskOpenPath asks for an image to open. It returns "" when cancelled.
func (Dialogs) AskOpenPath(initialDir string) string {
	opts := []Opt{
		Title("Select an image"),
		Filetypes([]FileType{
			{TypeName: "Image files", Extensions: imageproc.LoadExtensions()},
			{TypeName: "All files", Extensions: []string{"*"}},
		}),
	}
	if initialDir != "" {
		opts = append(opts, Initialdir(initialDir))
	}
	files := GetOpenFile(opts...)
	if len(files) == 0 {
		return ""
	}
	return files[0]
}

// AskSavePath asks where to save the image of kind k. It returns "" when
// cancelled.
func (Dialogs) AskSavePath(k model.Kind, initialDir string) string {
	opts := []Opt{
		Title("Save " + k.String() + " image"),
		Initialfile(k.DefaultFileName()),
		Defaultextension(".png"),
		Filetypes([]FileType{
			{TypeName: "PNG files", Extensions: []string{".png"}},
			{TypeName: "JPEG files", Extensions: []string{".jpg", ".jpeg"}},
			{TypeName: "All files", Extensions: []string{"*"}},
		}),
	}
	if initialDir != "" {
		opts = append(opts, Initialdir(initialDir))
	}
	return GetSaveFile(opts...)
}

func (Dialogs) ShowInfo(title, msg string)    { messageBox("info", title, msg) }
func (Dialogs) ShowWarning(title, msg string) { messageBox("warning", title, msg) }
func (Dialogs) ShowError(title, msg string)   { messageBox("error", title, msg) }

func messageBox(icon, title, msg string) {
	MessageBox(Icon(icon), Title(title), Msg(msg), Type("ok"))
}
