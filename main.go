// main holds the entry logic for the gerritlens CLI.
package main

import (
	"os"

	"github.com/gerritlens/gerritlens/cmd"
	"github.com/gerritlens/gerritlens/internal/contract"
	"github.com/gerritlens/gerritlens/internal/pointstore"
)

func main() {
	err := cmd.Execute()

	// Release store connections before deciding the exit code.
	pointstore.CloseStore()

	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("could not stop profiling", perr)
	}

	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
