package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testGPL = `GIMP Palette
Name: two tone
Columns: 2
# comment
  0   0   0	black
255 255 255	white
300   0   0	out of range
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(testGPL))
	if err != nil {
		t.Fatalf("ParseGPL error: %v", err)
	}
	if p.Name != "two tone" || len(p.Colors) != 2 {
		t.Fatalf("got %q with %d colors", p.Name, len(p.Colors))
	}
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\n")); err == nil {
		t.Fatalf("empty palette accepted")
	}
}

func TestLookup(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	tests := []struct {
		norm float64
		want RGB
	}{
		{-1, RGB{0, 0, 0}},
		{0, RGB{0, 0, 0}},
		{0.5, RGB{100, 50, 25}},
		{1, RGB{200, 100, 50}},
		{2, RGB{200, 100, 50}},
	}
	for _, tt := range tests {
		if got := p.Lookup(tt.norm); got != tt.want {
			t.Errorf("Lookup(%v)=%v; want %v", tt.norm, got, tt.want)
		}
	}
	if p.Index(-3) != p.Colors[0] || p.Index(9) != p.Colors[1] {
		t.Errorf("Index does not clamp")
	}
}

func TestLoadPalette(t *testing.T) {
	p, err := LoadPalette("")
	if err != nil || p.Name != "plasma" {
		t.Fatalf("LoadPalette(\"\")=%v, %v", p, err)
	}

	path := filepath.Join(t.TempDir(), "two.gpl")
	os.WriteFile(path, []byte(testGPL), 0644)
	p, err = LoadPalette(path)
	if err != nil || p.Name != "two tone" {
		t.Fatalf("LoadPalette(%s)=%v, %v", path, p, err)
	}

	if _, err := LoadPalette(filepath.Join(t.TempDir(), "missing.gpl")); err == nil {
		t.Fatalf("missing palette accepted")
	}
}

func TestThemeColors(t *testing.T) {
	th := Default()
	if got := string(th.BG()); got != "#0d0887" {
		t.Errorf("BG()=%s", got)
	}
	if got := string(th.Success()); got != "#f0f921" {
		t.Errorf("Success()=%s", got)
	}
	if th.ChannelRGB(0) == th.ChannelRGB(15) {
		t.Errorf("first and last channel share a color")
	}
}
