// Package clipboard wraps system clipboard access for the selection and
// copy-mode commands. Failures are non-fatal by design: callers speak
// "Clipboard unavailable" rather than surfacing the underlying error.
package clipboard

import "github.com/atotto/clipboard"

// Unavailable is the utterance spoken when a clipboard operation fails.
const Unavailable = "Clipboard unavailable"

// Write copies text to the system clipboard. On failure it returns
// Unavailable as the message to speak, alongside the underlying error
// for debug logging.
func Write(text string) (spoken string, err error) {
	if err := clipboard.WriteAll(text); err != nil {
		return Unavailable, err
	}
	return "", nil
}

// Read returns the system clipboard's contents, or Unavailable plus the
// underlying error on failure.
func Read() (text string, spoken string, err error) {
	text, err = clipboard.ReadAll()
	if err != nil {
		return "", Unavailable, err
	}
	return text, "", nil
}
