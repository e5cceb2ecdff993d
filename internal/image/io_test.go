package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
)

func testRGB(t testing.TB, w, h int) *ImageBuf {
	t.Helper()
	buf, err := NewImageBuf(w, h, FormatRGB8)
	if err != nil {
		t.Fatal(err)
	}
	for y := range h {
		for x := range w {
			_ = buf.Set(x, y, 0, uint8(x*255/max(1, w-1)))
			_ = buf.Set(x, y, 1, uint8(y*255/max(1, h-1)))
			_ = buf.Set(x, y, 2, uint8((x+y)%2*255))
		}
	}
	return buf
}

// =============================================================================
// Conversion Tests
// =============================================================================

func TestFromStdImage_Modes(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	nrgba.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(1, 0, color.Gray{Y: 99})

	tests := []struct {
		name   string
		img    image.Image
		mode   Mode
		format Format
		data   []byte
	}{
		{"color from NRGBA", nrgba, ModeColor, FormatRGB8, []byte{255, 0, 0, 10, 20, 30}},
		{"gray from NRGBA", nrgba, ModeGray, FormatGray8, []byte{76, 18}},
		{"auto from NRGBA", nrgba, ModeAuto, FormatRGB8, []byte{255, 0, 0, 10, 20, 30}},
		{"auto from Gray", gray, ModeAuto, FormatGray8, []byte{0, 99}},
		{"color from Gray", gray, ModeColor, FormatRGB8, []byte{0, 0, 0, 99, 99, 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := FromStdImage(tt.img, tt.mode)
			if buf.Format() != tt.format {
				t.Fatalf("Format() = %v, want %v", buf.Format(), tt.format)
			}
			if !bytes.Equal(buf.Data(), tt.data) {
				t.Errorf("Data() = %v, want %v", buf.Data(), tt.data)
			}
		})
	}
}

func TestFromStdImage_SubImageOffset(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	gray.SetGray(2, 3, color.Gray{Y: 50})
	sub := gray.SubImage(image.Rect(2, 2, 4, 4))

	buf := FromStdImage(sub, ModeGray)
	if buf.Width() != 2 || buf.Height() != 2 {
		t.Fatalf("Bounds() = %dx%d, want 2x2", buf.Width(), buf.Height())
	}
	if got := buf.At(0, 1, 0); got != 50 {
		t.Errorf("At(0, 1, 0) = %d, want 50", got)
	}
}

func TestFromStdImage_Empty(t *testing.T) {
	if buf := FromStdImage(image.NewGray(image.Rect(0, 0, 0, 3)), ModeAuto); buf != nil {
		t.Errorf("FromStdImage(empty) = %v, want nil", buf)
	}
}

func TestToStdImage(t *testing.T) {
	buf := testRGB(t, 3, 2)
	img := buf.ToStdImage()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("ToStdImage() = %T, want *image.NRGBA", img)
	}
	c := nrgba.NRGBAAt(2, 1)
	if c.R != buf.At(2, 1, 0) || c.G != buf.At(2, 1, 1) || c.B != buf.At(2, 1, 2) || c.A != 255 {
		t.Errorf("NRGBAAt(2, 1) = %v, want samples of buf with A=255", c)
	}

	g, _ := NewImageBuf(2, 2, FormatGray8)
	if _, ok := g.ToStdImage().(*image.Gray); !ok {
		t.Errorf("Gray8.ToStdImage() = %T, want *image.Gray", g.ToStdImage())
	}
}

// =============================================================================
// Encode/Decode Tests
// =============================================================================

func TestEncodeDecode_Lossless(t *testing.T) {
	src := testRGB(t, 9, 7)
	for _, ext := range []string{".png", "png", ".bmp", ".tiff", ".tif"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, ext, src); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(&buf, ModeColor)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !got.Equal(src) {
				t.Error("round trip changed the image")
			}
		})
	}
}

func TestEncodeDecode_JPEG(t *testing.T) {
	src, _ := NewImageBuf(16, 16, FormatGray8)
	for i := range src.Data() {
		src.Data()[i] = 128
	}

	var buf bytes.Buffer
	if err := Encode(&buf, ".jpg", src); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(&buf, ModeAuto)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Format() != FormatGray8 {
		t.Errorf("Format() = %v, want Gray8", got.Format())
	}
	for i, v := range got.Data() {
		if v < 124 || v > 132 {
			t.Fatalf("sample %d = %d, want about 128", i, v)
		}
	}
}

func TestDecode_GIF(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 3, 2), palette.WebSafe)
	pal.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := gif.Encode(&buf, pal, nil); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf, ModeColor)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.At(1, 1, 0) != 255 || got.At(1, 1, 1) != 0 {
		t.Errorf("pixel (1, 1) = (%d, %d, %d), want red",
			got.At(1, 1, 0), got.At(1, 1, 1), got.At(1, 1, 2))
	}
}

func TestDecode_InvalidData(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not an image")), ModeAuto)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Decode() error = %v, want ErrDecode", err)
	}
}

func TestLoadFromBytes_Empty(t *testing.T) {
	_, err := LoadFromBytes(nil, ModeAuto)
	if !errors.Is(err, ErrDecode) || !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadFromBytes(nil) error = %v, want ErrDecode and ErrEmptyData", err)
	}
}

func TestEncode_Unsupported(t *testing.T) {
	src := testRGB(t, 2, 2)
	err := Encode(&bytes.Buffer{}, ".webp", src)
	if !errors.Is(err, ErrEncode) || !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(.webp) error = %v, want ErrEncode and ErrUnsupportedFormat", err)
	}
}

// =============================================================================
// File Tests
// =============================================================================

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src := testRGB(t, 12, 5)

	for _, name := range []string{"out.png", "out.png.zst", "out.BMP", "out.tiff.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, src); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path, ModeColor)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !got.Equal(src) {
				t.Error("Save/Load changed the image")
			}
		})
	}
}

func TestSave_CompressedIsZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png.zst")
	if err := Save(path, testRGB(t, 4, 4)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, zstdMagic) {
		t.Errorf("file starts with % x, want zstd magic", data[:min(4, len(data))])
	}
}

func TestSave_Unsupported(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.webp", "out", "out.zst", "out.gif.zst"} {
		path := filepath.Join(dir, name)
		err := Save(path, testRGB(t, 2, 2))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Save(%q) error = %v, want ErrUnsupportedFormat", name, err)
		}
		if _, statErr := os.Stat(path); statErr == nil {
			t.Errorf("Save(%q) created a file", name)
		}
	}
}

// An encoder failure must not leave a truncated file behind.
func TestSave_EncodeFailureRemovesFile(t *testing.T) {
	dir := t.TempDir()
	empty := &ImageBuf{} // 0x0 is rejected by the PNG encoder
	for _, name := range []string{"empty.png", "empty.png.zst"} {
		path := filepath.Join(dir, name)
		err := Save(path, empty)
		if !errors.Is(err, ErrEncode) {
			t.Errorf("Save(%q) error = %v, want ErrEncode", name, err)
		}
		if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
			t.Errorf("Save(%q) left a file behind (stat error %v)", name, statErr)
		}
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/image.png", ModeAuto)
	if !errors.Is(err, ErrDecode) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want ErrDecode wrapping os.ErrNotExist", err)
	}
}

// =============================================================================
// Resize Tests
// =============================================================================

func TestResize(t *testing.T) {
	src := testRGB(t, 20, 10)
	got, err := Resize(src, 10, 5)
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if got.Width() != 10 || got.Height() != 5 || got.Format() != FormatRGB8 {
		t.Errorf("Resize() = %v, want RGB8 10x5", got)
	}

	flat, _ := NewImageBuf(8, 8, FormatGray8)
	for i := range flat.Data() {
		flat.Data()[i] = 77
	}
	got, err = Resize(flat, 3, 5)
	if err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if got.Format() != FormatGray8 {
		t.Errorf("Format() = %v, want Gray8", got.Format())
	}
	for i, v := range got.Data() {
		if v != 77 {
			t.Fatalf("sample %d = %d, want 77 for a flat image", i, v)
		}
	}

	if _, err := Resize(src, 0, 4); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0, 4) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestScale(t *testing.T) {
	src := testRGB(t, 10, 3)
	tests := []struct {
		factor float64
		w, h   int
	}{
		{1, 10, 3},
		{0.5, 5, 2},
		{2, 20, 6},
		{0.01, 1, 1},
	}
	for _, tt := range tests {
		got, err := Scale(src, tt.factor)
		if err != nil {
			t.Fatalf("Scale(%v) error = %v", tt.factor, err)
		}
		if got.Width() != tt.w || got.Height() != tt.h {
			t.Errorf("Scale(%v) = %dx%d, want %dx%d", tt.factor, got.Width(), got.Height(), tt.w, tt.h)
		}
	}
	if _, err := Scale(src, 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Scale(0) error = %v, want ErrInvalidDimensions", err)
	}
}

func BenchmarkDecodePNG(b *testing.B) {
	var buf bytes.Buffer
	if err := Encode(&buf, ".png", testRGB(b, 256, 256)); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()
	for b.Loop() {
		_, _ = Decode(bytes.NewReader(data), ModeColor)
	}
}
