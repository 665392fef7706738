package input

// Key is one decoded keypress: either a literal byte sequence destined
// for passthrough, or a meta-prefixed action key (ESC followed by a
// printable character).
type Key struct {
	// Raw is the original bytes read from stdin for this key, used
	// when a handler decides to pass the key through unchanged.
	Raw []byte
	// Meta is true if this key was ESC + a printable character.
	Meta bool
	// Rune is the printable character following ESC, when Meta is
	// true; otherwise it is the single decoded byte's rune value for
	// ordinary ASCII keys.
	Rune rune
}

// Decoder turns a stream of input bytes into Keys, recognizing the
// ESC-prefixed meta convention: ESC followed immediately by a printable
// ASCII character is meta-X; an ESC followed by anything else
// (including a CSI/SS3 introducer) is left to the caller as a bare ESC
// key so real arrow/function keys are not swallowed. An ESC that ends a
// read is held until the next read supplies its follower.
type Decoder struct {
	pending []byte // a held ESC byte awaiting its follower
}

// Decode splits buf into Keys. Any trailing bare ESC with no follower
// yet in this read is held in pending and completed by the next call.
func (d *Decoder) Decode(buf []byte) []Key {
	var keys []Key
	i := 0

	if len(d.pending) > 0 {
		if len(buf) > 0 {
			k := d.completePending(buf[0])
			keys = append(keys, k)
			if k.Meta {
				// buf[0] was consumed as the meta follower; any other
				// byte is decoded normally below.
				i = 1
			}
		} else {
			return nil
		}
	}

	for i < len(buf) {
		b := buf[i]
		if b == 0x1B {
			if i+1 < len(buf) {
				follow := buf[i+1]
				if isMetaFollower(follow) {
					keys = append(keys, Key{Raw: buf[i : i+2], Meta: true, Rune: rune(follow)})
					i += 2
					continue
				}
				// ESC [ or ESC O: a CSI/SS3 sequence, not a meta
				// key. Hand the bare ESC through and let the
				// caller's CSI decoder take the rest.
				keys = append(keys, Key{Raw: buf[i : i+1], Rune: 0x1B})
				i++
				continue
			}
			d.pending = []byte{0x1B}
			i++
			continue
		}
		r, size := decodeRune(buf[i:])
		keys = append(keys, Key{Raw: buf[i : i+size], Rune: r})
		i += size
	}
	return keys
}

func (d *Decoder) completePending(follow byte) Key {
	d.pending = nil
	if isMetaFollower(follow) {
		return Key{Raw: []byte{0x1B, follow}, Meta: true, Rune: rune(follow)}
	}
	return Key{Raw: []byte{0x1B}, Rune: 0x1B}
}

// isMetaFollower reports whether b can follow ESC to form meta-X: any
// printable ASCII character that isn't the CSI ('[') or SS3 ('O')
// introducer.
func isMetaFollower(b byte) bool {
	if b == '[' || b == 'O' {
		return false
	}
	return b >= 0x20 && b < 0x7F
}

// decodeRune decodes one UTF-8 rune (or one raw byte, for a truncated
// sequence at the end of a read) from the front of buf.
func decodeRune(buf []byte) (rune, int) {
	b := buf[0]
	if b < 0x80 {
		return rune(b), 1
	}
	size := utf8SeqLen(b)
	if size > len(buf) {
		return rune(b), 1
	}
	r := rune(0)
	switch size {
	case 2:
		r = rune(b&0x1F)<<6 | rune(buf[1]&0x3F)
	case 3:
		r = rune(b&0x0F)<<12 | rune(buf[1]&0x3F)<<6 | rune(buf[2]&0x3F)
	case 4:
		r = rune(b&0x07)<<18 | rune(buf[1]&0x3F)<<12 | rune(buf[2]&0x3F)<<6 | rune(buf[3]&0x3F)
	default:
		return rune(b), 1
	}
	return r, size
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}
