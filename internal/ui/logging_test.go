package ui

import (
	"github.com/pterm/pterm"
	"os"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Polling every %d ms"
	a := 2000
	Printfln(msg, a)
	// Output:
	// Polling every 2000 ms
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	pterm.PrintDebugMessages = true

	msg := "Fetched %d policies"
	a := 3
	Debug(msg, a)
	// Output:
	// DEBUG: Fetched 3 policies
}
