package corelite

import (
	"fmt"
	"os"
)

// debugPrint backs the PrintTree/PrintAutomaton/TraceMatching options.
// Diagnostics only - never consulted by match logic.
func debugPrint(s string) {
	fmt.Fprintln(os.Stderr, s)
}
