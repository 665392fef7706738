package input

// Action names one meta-key command from the keymap (spec's essential
// action set).
type Action int

const (
	ActionNone Action = iota
	ActionPrevLine
	ActionCurLine
	ActionNextLine
	ActionPrevWord
	ActionCurWord
	ActionNextWord
	ActionPrevChar
	ActionCurChar
	ActionNextChar
	ActionTopOfScreen
	ActionBottomOfScreen
	ActionStartOfLine
	ActionEndOfLine
	ActionConfigMenu
	ActionCopyMode
	ActionQuietToggle
	ActionCancelSpeech
	ActionSelectionToggle
)

// keymap is the static meta-key -> action mapping. Built once; see
// spec's essential keymap table.
var keymap = map[rune]Action{
	'u': ActionPrevLine,
	'i': ActionCurLine,
	'o': ActionNextLine,
	'j': ActionPrevWord,
	'k': ActionCurWord,
	'l': ActionNextWord,
	'm': ActionPrevChar,
	',': ActionCurChar,
	'.': ActionNextChar,
	'U': ActionTopOfScreen,
	'O': ActionBottomOfScreen,
	'M': ActionStartOfLine,
	'>': ActionEndOfLine,
	'c': ActionConfigMenu,
	'v': ActionCopyMode,
	'q': ActionQuietToggle,
	'x': ActionCancelSpeech,
	'r': ActionSelectionToggle,
}

// Lookup resolves a meta-key's rune to its action. Plugin trigger keys
// are resolved separately by the caller against config.Plugins, since
// they are config-defined rather than static.
func Lookup(r rune) (Action, bool) {
	a, ok := keymap[r]
	return a, ok
}
