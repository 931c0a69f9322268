package inputfield

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/glasswing/inputfield/keyboard"
	"github.com/glasswing/inputfield/rules"
)

// LineType controls how the field treats line breaks and the return key.
type LineType int

const (
	// SingleLine strips newlines; return submits.
	SingleLine LineType = iota
	// MultiLineNewline inserts a newline on return.
	MultiLineNewline
	// MultiLineSubmit renders multiple lines but return still submits.
	MultiLineSubmit
)

// Config is the per-field configuration. Everything here is static for the
// lifetime of an editing session; changing it between sessions is fine.
type Config struct {
	// Validation selects a built-in character validation preset by name
	// ("integer", "decimal", "name", ...). Empty or "none" accepts all.
	Validation string `toml:"validation"`

	// RulesFile points at a TOML/JSON custom rule set, used when Validation
	// is "custom".
	RulesFile string `toml:"rules_file"`

	// CharacterLimit caps the text length in runes; 0 means unlimited.
	CharacterLimit int `toml:"character_limit"`

	// LineLimit caps the rendered line count; 0 means unlimited.
	LineLimit int `toml:"line_limit"`

	LineType LineType `toml:"line_type"`

	// Placeholder is shown while the raw text is empty.
	Placeholder string `toml:"placeholder"`

	// Secure marks a password field: display runs through the password
	// filter and the clipboard never sees field content.
	Secure bool `toml:"secure"`

	RichTextEditing bool `toml:"rich_text_editing"`
	EmojisAllowed   bool `toml:"emojis_allowed"`

	// HasNext advertises a following field, turning the return key into
	// "next".
	HasNext bool `toml:"has_next"`

	// Native keyboard presentation.
	KeyboardType       keyboard.KeyboardType           `toml:"keyboard_type"`
	ReturnKeyType      keyboard.ReturnKeyType          `toml:"return_key_type"`
	Autocapitalization keyboard.AutocapitalizationType `toml:"autocapitalization"`
	AutofillType       string                          `toml:"autofill_type"`
	Autocorrection     bool                            `toml:"autocorrection"`
}

// DefaultConfig returns a plain unlimited text field.
func DefaultConfig() Config {
	return Config{
		Validation:         "none",
		KeyboardType:       keyboard.TypeDefault,
		ReturnKeyType:      keyboard.ReturnDefault,
		Autocapitalization: keyboard.AutocapNone,
		Autocorrection:     true,
	}
}

// LoadConfig reads a field configuration from a TOML file, filling defaults
// for anything unset.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read field config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse field config %s: %w", path, err)
	}
	return cfg, nil
}

// buildValidator materializes the configured validator. Errors degrade to a
// permissive validator and a warning, never a failure.
func (c Config) buildValidator(warnf func(string, ...any)) *rules.Validator {
	v := &rules.Validator{
		Preset: rules.PresetFromName(c.Validation),
		Limit:  c.CharacterLimit,
	}
	if v.Preset == rules.Custom && c.RulesFile != "" {
		set, err := rules.LoadFile(c.RulesFile)
		if err != nil {
			warnf("rules file %s: %v; accepting all characters", c.RulesFile, err)
			v.Rules = rules.AcceptAll()
		} else {
			v.Rules = set
		}
	}
	return v
}

// keyboardConfig renders the field configuration as the native keyboard
// payload.
func (c Config) keyboardConfig(v *rules.Validator) keyboard.Config {
	kc := keyboard.Config{
		KeyboardType:           c.KeyboardType,
		CharacterValidation:    c.Validation,
		AutocapitalizationType: c.Autocapitalization,
		AutofillType:           c.AutofillType,
		ReturnKeyType:          c.ReturnKeyType,
		Autocorrection:         c.Autocorrection,
		Secure:                 c.Secure,
		RichTextEditing:        c.RichTextEditing,
		EmojisAllowed:          c.EmojisAllowed,
		HasNext:                c.HasNext,
		CharacterLimit:         c.CharacterLimit,
	}
	switch c.LineType {
	case MultiLineNewline:
		kc.LineType = keyboard.LineMultiNewline
	case MultiLineSubmit:
		kc.LineType = keyboard.LineMultiSubmit
	default:
		kc.LineType = keyboard.LineSingle
	}
	if c.HasNext && kc.ReturnKeyType == keyboard.ReturnDefault {
		kc.ReturnKeyType = keyboard.ReturnNext
	}
	if v != nil && v.Preset == rules.Custom && v.Rules != nil {
		if payload, err := v.Rules.MarshalJSON(); err == nil {
			kc.CharacterValidatorPayload = payload
		}
	}
	return kc
}
