package emoji

// Shortcodes maps :name: spellings to their emoji sequences. The table is
// deliberately small; hosts can register more at startup (before any field
// begins editing; the table is not synchronized).
var Shortcodes = map[string]string{
	"smile":     "😄",
	"grin":      "😀",
	"wink":      "😉",
	"heart":     "❤️",
	"thumbsup":  "👍",
	"tada":      "🎉",
	"fire":      "🔥",
	"rocket":    "🚀",
	"eyes":      "👀",
	"thinking":  "🤔",
	"cry":       "😢",
	"joy":       "😂",
	"clap":      "👏",
	"wave":      "👋",
	"sparkles":  "✨",
	"star":      "⭐",
	"check":     "✅",
	"x":         "❌",
	"warning":   "⚠️",
	"hundred":   "💯",
	"family":    "👨‍👩‍👧‍👦",
	"technologist": "👨‍💻",
}

// Lookup resolves a shortcode name (without colons). ok is false for unknown
// names.
func Lookup(name string) (string, bool) {
	s, ok := Shortcodes[name]
	return s, ok
}
