package action

import (
	"io"
	"os"
)

// stderr is a package-level indirection so tests can capture diagnostic
// output without touching the real file descriptor.
var stderr io.Writer = os.Stderr
