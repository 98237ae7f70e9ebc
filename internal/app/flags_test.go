package app

import (
	"flag"
	"maps"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("wfc", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-w", "64", "-tiles", "ramp", "-seed", "5", "-scale", "2"}); err != nil {
		t.Fatal(err)
	}
	if cfg.W != 64 || cfg.Tiles != "ramp" || cfg.Seed != 5 || cfg.Scale != 2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	want := map[string]string{"w": "64", "tiles": "ramp", "seed": "5"}
	if got := cfg.SimConfig(); !maps.Equal(got, want) {
		t.Fatalf("SimConfig = %v", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	got := NewConfig().SimConfig()
	want := map[string]string{"tiles": "terrain", "seed": "1337"}
	if !maps.Equal(got, want) {
		t.Fatalf("default SimConfig = %v", got)
	}
}
