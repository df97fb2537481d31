package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

// halfAdderAAG is the and-inverter form of a half adder.
const halfAdderAAG = `aag 5 2 0 2 3
2
4
8
10
6 3 5
8 11 7
10 2 4
`

func TestValidateFormat(t *testing.T) {
	for f := range ValidFormats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("pdf"); err == nil {
		t.Error("ValidateFormat(pdf) should fail")
	}
	if err := ValidateFormats([]string{FormatDOT, "pdf"}); err == nil {
		t.Error("ValidateFormats should fail on the invalid entry")
	}
}

func TestValidatePass(t *testing.T) {
	for p := range ValidPasses {
		if err := ValidatePass(p); err != nil {
			t.Errorf("ValidatePass(%q) = %v", p, err)
		}
	}
	if err := ValidatePass("optimize"); err == nil {
		t.Error("ValidatePass(optimize) should fail")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Source: filepath.Join("designs", "adder.aag")}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Name != "adder" {
		t.Errorf("Name = %q, want %q", opts.Name, "adder")
	}
	if opts.Buffers != DefaultBuffers {
		t.Errorf("Buffers = %d, want %d", opts.Buffers, DefaultBuffers)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default")
	}

	// Idempotent: a second call leaves the options alone.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults: %v", err)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no source", Options{}},
		{"bad pass", Options{SourceData: []byte(halfAdderAAG), Passes: []string{"optimize"}}},
		{"bad format", Options{SourceData: []byte(halfAdderAAG), Formats: []string{"pdf"}}},
		{"spice without library", Options{SourceData: []byte(halfAdderAAG), Formats: []string{FormatSpice}}},
		{"buffers without scoap", Options{SourceData: []byte(halfAdderAAG), Passes: []string{PassBuffers}}},
		{"buffers before scoap", Options{SourceData: []byte(halfAdderAAG), Passes: []string{PassBuffers, PassScoap}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("validation should fail")
			}
		})
	}

	good := Options{SourceData: []byte(halfAdderAAG), Passes: []string{PassScoap, PassBuffers}}
	if err := good.ValidateAndSetDefaults(); err != nil {
		t.Errorf("scoap before buffers should validate, got %v", err)
	}
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		source, want string
	}{
		{"", DefaultName},
		{"adder.aag", "adder"},
		{filepath.Join("designs", "bench", "c17.aag"), "c17"},
		{"netlist.json", "netlist"},
		{".aag", DefaultName},
	}
	for _, tt := range tests {
		if got := sourceName(tt.source); got != tt.want {
			t.Errorf("sourceName(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestWants(t *testing.T) {
	opts := Options{Passes: []string{PassMove, PassDual}, Formats: []string{FormatBLIF}}
	if !opts.WantsPass(PassMove) || opts.WantsPass(PassNAND) {
		t.Error("WantsPass misreports the pass list")
	}
	if !opts.WantsFormat(FormatBLIF) || opts.WantsFormat(FormatSVG) {
		t.Error("WantsFormat misreports the format list")
	}
	colored := Options{Color: 4}
	if colored.ColorMask() != boolnet.ColorDualBase {
		t.Error("ColorMask should convert the numeric mask")
	}
}

func TestReadSource(t *testing.T) {
	if data, err := ReadSource(Options{SourceData: []byte("inline")}); err != nil || string(data) != "inline" {
		t.Errorf("ReadSource(inline) = %q, %v", data, err)
	}

	path := filepath.Join(t.TempDir(), "net.aag")
	if err := os.WriteFile(path, []byte(halfAdderAAG), 0o644); err != nil {
		t.Fatal(err)
	}
	if data, err := ReadSource(Options{Source: path}); err != nil || string(data) != halfAdderAAG {
		t.Errorf("ReadSource(file) failed: %v", err)
	}

	if _, err := ReadSource(Options{Source: filepath.Join(t.TempDir(), "missing.aag")}); err == nil {
		t.Error("ReadSource should fail for a missing file")
	}
}

func TestLoadDetectsFormat(t *testing.T) {
	n, err := Load([]byte(halfAdderAAG), Options{})
	if err != nil {
		t.Fatalf("Load(aag): %v", err)
	}
	if n.NumInputs() != 2 || n.NumInner() != 3 {
		t.Errorf("loaded %d inputs, %d inner gates, want 2 and 3", n.NumInputs(), n.NumInner())
	}

	// Leading whitespace does not confuse detection.
	if _, err := Load([]byte("\n  "+halfAdderAAG), Options{}); err != nil {
		t.Errorf("Load with leading whitespace: %v", err)
	}

	json, _, err := loadAndRender(t, halfAdderAAG)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Load(json, Options{})
	if err != nil {
		t.Fatalf("Load(json): %v", err)
	}
	if back.NumGates() != n.NumGates() {
		t.Errorf("json round trip changed the gate count")
	}

	if _, err := Load([]byte("not a netlist"), Options{}); err == nil {
		t.Error("Load should fail on garbage")
	}
}

// loadAndRender loads an AAG source and returns its JSON rendition.
func loadAndRender(t *testing.T, src string) ([]byte, *boolnet.Net, error) {
	t.Helper()
	n, err := Load([]byte(src), Options{})
	if err != nil {
		return nil, nil, err
	}
	artifacts, err := Render(n, Options{Name: "net", Formats: []string{FormatJSON}})
	if err != nil {
		return nil, nil, err
	}
	return artifacts[FormatJSON], n, nil
}

func TestApplyPasses(t *testing.T) {
	n, err := Load([]byte(halfAdderAAG), Options{})
	if err != nil {
		t.Fatal(err)
	}

	times, sum, err := ApplyPasses(n, Options{Passes: []string{PassMove, PassScoap}})
	if err != nil {
		t.Fatalf("ApplyPasses: %v", err)
	}
	if _, ok := times[PassMove]; !ok {
		t.Error("missing timing for the move pass")
	}
	if sum == 0 {
		t.Error("scoap pass should report a non-zero sum")
	}
}

func TestRunPassUnknown(t *testing.T) {
	n, err := Load([]byte(halfAdderAAG), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RunPass(n, "optimize", 0); err == nil {
		t.Error("RunPass should reject unknown passes")
	}
}
