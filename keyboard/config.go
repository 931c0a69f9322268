package keyboard

import "encoding/json"

// KeyboardType selects the native key layout.
type KeyboardType string

const (
	TypeDefault               KeyboardType = "default"
	TypeASCIICapable          KeyboardType = "ascii"
	TypeNumbersAndPunctuation KeyboardType = "numbers_punctuation"
	TypeURL                   KeyboardType = "url"
	TypeNumberPad             KeyboardType = "number_pad"
	TypePhonePad              KeyboardType = "phone_pad"
	TypeEmailAddress          KeyboardType = "email"
	TypeDecimalPad            KeyboardType = "decimal_pad"
	TypeSearch                KeyboardType = "search"
)

// LineType mirrors the field's line handling so the native editor wraps and
// submits the same way the engine will.
type LineType string

const (
	LineSingle       LineType = "single"
	LineMultiNewline LineType = "multi_newline"
	LineMultiSubmit  LineType = "multi_submit"
)

// ReturnKeyType labels the return key.
type ReturnKeyType string

const (
	ReturnDefault ReturnKeyType = "default"
	ReturnDone    ReturnKeyType = "done"
	ReturnNext    ReturnKeyType = "next"
	ReturnGo      ReturnKeyType = "go"
	ReturnSend    ReturnKeyType = "send"
	ReturnSearch  ReturnKeyType = "search"
)

// AutocapitalizationType mirrors the platform autocapitalization modes.
type AutocapitalizationType string

const (
	AutocapNone      AutocapitalizationType = "none"
	AutocapWords     AutocapitalizationType = "words"
	AutocapSentences AutocapitalizationType = "sentences"
	AutocapAll       AutocapitalizationType = "all"
)

// Config is the payload handed to the native layer on Show. The native
// editor applies the same validation the engine does, so offline native
// typing and engine-side validation cannot diverge; the validator travels as
// an embedded JSON payload it can interpret without engine types.
type Config struct {
	KeyboardType           KeyboardType           `json:"keyboardType"`
	CharacterValidation    string                 `json:"characterValidation"`
	LineType               LineType               `json:"lineType"`
	AutocapitalizationType AutocapitalizationType `json:"autocapitalizationType"`
	AutofillType           string                 `json:"autofillType,omitempty"`
	ReturnKeyType          ReturnKeyType          `json:"returnKeyType"`
	Autocorrection         bool                   `json:"autocorrection"`
	Secure                 bool                   `json:"secure"`
	RichTextEditing        bool                   `json:"richTextEditing"`
	EmojisAllowed          bool                   `json:"emojisAllowed"`
	HasNext                bool                   `json:"hasNext"`
	CharacterLimit         int                    `json:"characterLimit"`

	// CharacterValidatorPayload is the serialized custom rule set, present
	// only when CharacterValidation is "custom".
	CharacterValidatorPayload json.RawMessage `json:"characterValidatorPayload,omitempty"`
}

// MarshalPayload renders the config as the JSON document the native layer
// expects.
func (c Config) MarshalPayload() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
