package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/chai2010/webp"
)

func TestProgressReaderReportsTotal(t *testing.T) {
	body := bytes.Repeat([]byte("x"), 10_000)
	var calls int
	var last int64
	r := newProgressReader(body, func(sent, total int64) {
		calls++
		if total != int64(len(body)) {
			t.Fatalf("total = %d", total)
		}
		if sent < last {
			t.Fatalf("progress went backwards: %d < %d", sent, last)
		}
		last = sent
	})
	if _, err := io.Copy(io.Discard, r); err != nil {
		t.Fatal(err)
	}
	if calls == 0 || last != int64(len(body)) {
		t.Fatalf("calls=%d last=%d", calls, last)
	}
}

func TestProgressReaderHidesWriterTo(t *testing.T) {
	r := newProgressReader(make([]byte, 4096), nil)
	if _, ok := any(r).(io.WriterTo); ok {
		t.Fatal("progressReader must not expose WriteTo, io.Copy would bypass Read")
	}
}

func TestProgressReaderSeekRewinds(t *testing.T) {
	body := bytes.Repeat([]byte("y"), 1000)
	var last int64
	r := newProgressReader(body, func(sent, _ int64) { last = sent })
	var sink bytes.Buffer
	if _, err := io.Copy(&sink, r); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if r.Len() != len(body) {
		t.Fatalf("Len after rewind = %d", r.Len())
	}
	buf := make([]byte, 100)
	if _, err := r.Read(buf); err != nil {
		t.Fatal(err)
	}
	if last != 100 {
		t.Fatalf("progress after rewind = %d, want 100", last)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		sent, total int64
		want        int
	}{
		{0, 100, 0},
		{50, 200, 25},
		{200, 200, 100},
		{0, 0, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.sent, tt.total); got != tt.want {
			t.Errorf("Percent(%d,%d) = %d, want %d", tt.sent, tt.total, got, tt.want)
		}
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProcessImageAvatar(t *testing.T) {
	out, err := ProcessImage(pngBytes(t, 600, 400), ImageAvatar)
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if cfg.Width != AvatarSize || cfg.Height != AvatarSize {
		t.Fatalf("avatar is %dx%d", cfg.Width, cfg.Height)
	}
}

func TestProcessImageCoverFits(t *testing.T) {
	out, err := ProcessImage(pngBytes(t, 2560, 1000), ImageCover)
	if err != nil {
		t.Fatalf("ProcessImage: %v", err)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if cfg.Width > CoverWidth || cfg.Height > CoverHeight {
		t.Fatalf("cover is %dx%d", cfg.Width, cfg.Height)
	}
}

func TestProcessImageRejectsGarbage(t *testing.T) {
	if _, err := ProcessImage([]byte("not an image"), ImageAvatar); err == nil {
		t.Fatal("expected decode error")
	}
}
