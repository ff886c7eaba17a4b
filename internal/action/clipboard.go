package action

import "github.com/atotto/clipboard"

// SystemClipboard copies text to the OS clipboard via atotto/clipboard,
// the only clipboard library either the teacher or the rest of the pack
// touches anywhere (it touches none - this is an out-of-pack ecosystem
// pick, see DESIGN.md).
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}
