// Command replay feeds a recorded frame script through the gesture
// recognizer and prints what it detects.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Stderr.WriteString("replay: " + err.Error() + "\n")
		os.Exit(1)
	}
}
