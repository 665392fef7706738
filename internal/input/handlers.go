package input

// Hooks lets the handler stack drive navigation, speech, synth, and
// config actions without holding a reference back to the state/config
// bridge that owns those subsystems (the same cyclic-reference
// avoidance as terminal.Hooks).
type Hooks struct {
	Do            func(a Action)
	ToggleSetting func(key byte)
	CommitValue   func(key byte, text string) (ok bool, rejected string)
	CopyLine      func()
	CopyScreen    func()
	TriggerPlugin func(key byte)
	// PluginKeys reports the current config-defined plugin trigger
	// keys; read fresh each call since config can change at runtime
	// via the config menu.
	PluginKeys func() map[byte]bool
}

// Default is the base navigation handler: the meta-prefixed action set
// passes through Hooks.Do, everything else passes through to the PTY.
type Default struct {
	hooks Hooks
}

func NewDefault(hooks Hooks) *Default {
	return &Default{hooks: hooks}
}

func (d *Default) HandleKey(k Key) Result {
	if !k.Meta {
		return passthrough()
	}

	if a, ok := Lookup(k.Rune); ok {
		if d.hooks.Do != nil {
			d.hooks.Do(a)
		}
		switch a {
		case ActionConfigMenu:
			return push(NewConfigMenu(d.hooks))
		case ActionCopyMode:
			return push(NewCopyMode(d.hooks))
		default:
			return consume()
		}
	}

	if d.hooks.PluginKeys != nil {
		if b, ok := asByte(k.Rune); ok && d.hooks.PluginKeys()[b] {
			if d.hooks.TriggerPlugin != nil {
				d.hooks.TriggerPlugin(b)
			}
			return consume()
		}
	}

	// Unmapped meta key: not ours, so the wrapped program gets it.
	return passthrough()
}

func asByte(r rune) (byte, bool) {
	if r >= 0 && r < 0x80 {
		return byte(r), true
	}
	return 0, false
}

// valueSettingKeys are the config-menu options that push a ValueEntry
// handler rather than toggling in place: rate, volume, voice, cursor
// delay.
var valueSettingKeys = map[byte]bool{'r': true, 'v': true, 'V': true, 'd': true}

// toggleSettingKeys are the config-menu options that flip a boolean
// directly: process_symbols, key_echo, cursor_tracking, line_pause,
// repeated_symbols.
var toggleSettingKeys = map[byte]bool{'p': true, 'e': true, 'c': true, 'l': true, 's': true}

// ConfigMenu is pushed on meta+c. The bridge is expected to have spoken
// "config" from Hooks.Do(ActionConfigMenu) before this handler sees any
// keys. Boolean settings toggle in place; numeric ones push a
// ValueEntry. ESC pops the menu.
type ConfigMenu struct {
	hooks Hooks
}

func NewConfigMenu(hooks Hooks) *ConfigMenu {
	return &ConfigMenu{hooks: hooks}
}

func (m *ConfigMenu) HandleKey(k Key) Result {
	if k.Meta {
		return consume() // config menu ignores meta keys while open
	}
	if k.Rune == 0x1B {
		return pop()
	}

	b, ok := asByte(k.Rune)
	if !ok {
		return consume()
	}
	switch {
	case valueSettingKeys[b]:
		return push(NewValueEntry(b, m.hooks))
	case toggleSettingKeys[b]:
		if m.hooks.ToggleSetting != nil {
			m.hooks.ToggleSetting(b)
		}
		return consume()
	default:
		return consume()
	}
}

// ValueEntry is pushed when a config-menu key needs a typed value. It
// buffers printable characters until Enter commits or ESC cancels, then
// pops itself either way. On commit, the bridge validates the parsed
// value against the option's domain via Hooks.CommitValue.
type ValueEntry struct {
	target byte
	hooks  Hooks
	buf    []byte
}

func NewValueEntry(target byte, hooks Hooks) *ValueEntry {
	return &ValueEntry{target: target, hooks: hooks}
}

// Buffer exposes the entered text so far, for rendering.
func (v *ValueEntry) Buffer() string { return string(v.buf) }

func (v *ValueEntry) HandleKey(k Key) Result {
	if k.Meta {
		return consume()
	}
	switch k.Rune {
	case 0x1B:
		return pop()
	case '\r', '\n':
		if v.hooks.CommitValue != nil {
			v.hooks.CommitValue(v.target, string(v.buf))
		}
		return pop()
	case 0x7F, 0x08:
		if len(v.buf) > 0 {
			v.buf = v.buf[:len(v.buf)-1]
		}
		return consume()
	default:
		if k.Rune >= 0x20 && k.Rune < 0x7F {
			v.buf = append(v.buf, byte(k.Rune))
		}
		return consume()
	}
}

// CopyMode is pushed on meta+v. The next key decides: 'l' copies the
// current line, 's' copies the whole screen, anything else aborts. It
// pops itself after exactly one decision.
type CopyMode struct {
	hooks Hooks
}

func NewCopyMode(hooks Hooks) *CopyMode {
	return &CopyMode{hooks: hooks}
}

func (c *CopyMode) HandleKey(k Key) Result {
	if !k.Meta {
		switch k.Rune {
		case 'l':
			if c.hooks.CopyLine != nil {
				c.hooks.CopyLine()
			}
		case 's':
			if c.hooks.CopyScreen != nil {
				c.hooks.CopyScreen()
			}
		}
	}
	return pop()
}
