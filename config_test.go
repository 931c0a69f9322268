package inputfield

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glasswing/inputfield/keyboard"
	"github.com/glasswing/inputfield/rules"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "field.toml")
	data := `
validation = "decimal"
character_limit = 12
line_type = 1
placeholder = "0.00"
secure = false
has_next = true
keyboard_type = "decimal_pad"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Validation != "decimal" {
		t.Errorf("Validation = %q, want %q", cfg.Validation, "decimal")
	}
	if cfg.CharacterLimit != 12 {
		t.Errorf("CharacterLimit = %d, want 12", cfg.CharacterLimit)
	}
	if cfg.LineType != MultiLineNewline {
		t.Errorf("LineType = %d, want MultiLineNewline", cfg.LineType)
	}
	if cfg.KeyboardType != keyboard.TypeDecimalPad {
		t.Errorf("KeyboardType = %q, want %q", cfg.KeyboardType, keyboard.TypeDecimalPad)
	}
	// Unset keys keep their defaults.
	if !cfg.Autocorrection {
		t.Error("Autocorrection default lost")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if cfg.Validation != "none" {
		t.Errorf("fallback config not defaults: Validation = %q", cfg.Validation)
	}
}

func TestKeyboardConfigMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LineType = MultiLineSubmit
	cfg.HasNext = true
	cfg.Secure = true
	cfg.CharacterLimit = 8

	kc := cfg.keyboardConfig(nil)
	if kc.LineType != keyboard.LineMultiSubmit {
		t.Errorf("LineType = %q, want %q", kc.LineType, keyboard.LineMultiSubmit)
	}
	if kc.ReturnKeyType != keyboard.ReturnNext {
		t.Errorf("ReturnKeyType = %q, want %q (HasNext promotes the default)", kc.ReturnKeyType, keyboard.ReturnNext)
	}
	if !kc.Secure || kc.CharacterLimit != 8 {
		t.Errorf("Secure/CharacterLimit not carried: %+v", kc)
	}
}

func TestKeyboardConfigExplicitReturnKeyWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HasNext = true
	cfg.ReturnKeyType = keyboard.ReturnGo

	kc := cfg.keyboardConfig(nil)
	if kc.ReturnKeyType != keyboard.ReturnGo {
		t.Errorf("ReturnKeyType = %q, want %q", kc.ReturnKeyType, keyboard.ReturnGo)
	}
}

func TestBuildValidatorBadRulesFileDegrades(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	if err := os.WriteFile(path, []byte("rule = [not toml"), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Validation = "custom"
	cfg.RulesFile = path

	var warned bool
	v := cfg.buildValidator(func(string, ...any) { warned = true })
	if !warned {
		t.Error("expected a warning for the unparseable rules file")
	}
	if v.Preset != rules.Custom || v.Rules == nil {
		t.Fatalf("validator not degraded to accept-all: %+v", v)
	}
	out, _ := v.Validate("", "abc", 0, 0)
	if out != "abc" {
		t.Errorf("degraded validator rejected input: %q", out)
	}
}
