package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/image/draw"
)

// MaxDimension is the default maximum width or height of a displayed image.
const MaxDimension = 1024

// MaxFileSize is the largest source file Load will read.
const MaxFileSize = 20 << 20

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// supported lists the sniffed content types Render accepts.
var supported = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ErrUnsupportedRef is returned for image references that do not point at a local file.
var ErrUnsupportedRef = errors.New("unsupported image reference")

// Loader resolves local image references to displayable JPEG bytes.
type Loader struct {
	// MaxDimension overrides the package default when positive.
	MaxDimension int
}

// Load reads the image at ref (a filesystem path or a file:// URI),
// downscales it and re-encodes it as JPEG.
func (l Loader) Load(ref string) ([]byte, error) {
	path, err := ResolvePath(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	maxDim := l.MaxDimension
	if maxDim <= 0 {
		maxDim = MaxDimension
	}

	return Render(io.LimitReader(f, MaxFileSize+1), maxDim)
}

// ResolvePath turns an image reference into a filesystem path.
func ResolvePath(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: empty", ErrUnsupportedRef)
	}

	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path (including Windows drive letters, which parse as a scheme).
		return ref, nil
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: scheme %q", ErrUnsupportedRef, u.Scheme)
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("%w: remote host %q", ErrUnsupportedRef, u.Host)
	}
	if u.Path == "" {
		return "", fmt.Errorf("%w: no path", ErrUnsupportedRef)
	}
	return u.Path, nil
}

// Render decodes a JPEG or PNG picture, shrinks it to fit within
// maxDim x maxDim and returns it as JPEG.
func Render(r io.Reader, maxDim int) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("image larger than %d bytes", MaxFileSize)
	}

	// Sniff the bytes; the reference's extension is not trusted.
	if kind := http.DetectContentType(data); !supported[kind] {
		return nil, fmt.Errorf("unsupported image format: %s", kind)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := src.Bounds()
	if w, h := fit(b.Dx(), b.Dy(), maxDim); w != b.Dx() || h != b.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// fit scales w x h down to fit within max x max, keeping the aspect ratio.
func fit(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if w >= h {
		return max, clampMin(h * max / w)
	}
	return clampMin(w * max / h), max
}

func clampMin(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
