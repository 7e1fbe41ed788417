package stagecraft

import (
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// Screenshot queues a labeled screenshot, captured at the end of the current
// frame's Draw. The PNG is written to ScreenshotDir with a timestamped name.
func (l *Loop) Screenshot(label string) {
	l.screenshotQueue = append(l.screenshotQueue, label)
}

// flushScreenshots writes the rendered frame once per queued label.
func (l *Loop) flushScreenshots(screen *ebiten.Image) {
	if len(l.screenshotQueue) == 0 {
		return
	}
	labels := l.screenshotQueue
	l.screenshotQueue = l.screenshotQueue[:0]

	if err := os.MkdirAll(l.ScreenshotDir, 0o755); err != nil {
		debugLogError("screenshot", errors.Wrapf(err, "mkdir %s", l.ScreenshotDir))
		return
	}
	size := screen.Bounds().Size()
	buf := make([]byte, 4*size.X*size.Y)
	screen.ReadPixels(buf)
	frame := unpremultiply(buf, size.X, size.Y)

	prefix := time.Now().Format("20060102_150405") + "_"
	for _, label := range labels {
		name := filepath.Join(l.ScreenshotDir, prefix+sanitizeLabel(label)+".png")
		if err := writePNG(name, frame); err != nil {
			debugLogError("screenshot", err)
		}
	}
}

// unpremultiply wraps premultiplied RGBA bytes, as ebiten reads them back,
// and converts them to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	src := &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewNRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	return dst
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "screenshot")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return errors.Wrapf(png.Encode(f, img), "encode %s", path)
}

// sanitizeLabel maps a label onto a file-name-safe string: ASCII letters,
// digits, '-' and '.' survive, anything else becomes '_'.
func sanitizeLabel(label string) string {
	if label = strings.TrimSpace(label); label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && (isAlnum(byte(r)) || r == '-' || r == '.') {
			return r
		}
		return '_'
	}, label)
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
