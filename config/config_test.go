package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("got %+v; want defaults", cfg)
	}
}

func TestLoadFileFormats(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{"json", "config.json", `{"tempo": 90, "port": "IAC", "instrument": "violin"}`},
		{"yaml", "config.yaml", "tempo: 90\nport: IAC\ninstrument: violin\n"},
		{"yml", "config.yml", "tempo: 90\nport: IAC\ninstrument: violin\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			want := Config{Tempo: 90, TicksPerBeat: 64, Warmup: 0.125, Port: "IAC", Instrument: "violin"}
			if *cfg != want {
				t.Fatalf("got %+v; want %+v", *cfg, want)
			}
		})
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte("{tempo"), 0644)
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("LoadFile accepted malformed JSON")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		path := filepath.Join(t.TempDir(), "sub", name)
		cfg := DefaultConfig()
		cfg.Tempo = 75
		cfg.Debug = true
		if err := cfg.SaveFile(path); err != nil {
			t.Fatalf("%s: SaveFile error: %v", name, err)
		}
		got, err := LoadFile(path)
		if err != nil {
			t.Fatalf("%s: LoadFile error: %v", name, err)
		}
		if *got != *cfg {
			t.Fatalf("%s: got %+v; want %+v", name, *got, *cfg)
		}
	}
}

func TestZeroWarmup(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"zero.json":    `{"warmup": 0}`,
		"zero.yaml":    "warmup: 0\n",
		"absent.json":  `{"tempo": 90}`,
		"negative.yml": "warmup: -1\n",
	}
	want := map[string]float64{"zero.json": 0, "zero.yaml": 0, "absent.json": 0.125, "negative.yml": 0.125}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("%s: LoadFile error: %v", name, err)
		}
		if cfg.Warmup != want[name] {
			t.Errorf("%s: warmup %v; want %v", name, cfg.Warmup, want[name])
		}
	}

	// a saved zero warmup survives reloading
	path := filepath.Join(dir, "saved.json")
	cfg := DefaultConfig()
	cfg.Warmup = 0
	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile error: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if got.Warmup != 0 {
		t.Fatalf("reloaded warmup %v; want 0", got.Warmup)
	}
}
