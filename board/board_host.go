//go:build !(rp2040 || rp2350)

package board

import (
	"io"
	"os"

	"bspcore-go/config"

	"tinygo.org/x/drivers"
)

// Overridable for tests.
var (
	stdout io.Writer = os.Stdout
	exit             = os.Exit
)

// Name selects the embedded config.
func Name() string { return "host" }

// Init has nothing to configure on host builds.
func Init(config.Board) error { return nil }

// Output is the console sink.
func Output() io.Writer { return stdout }

// I2C reports no controller on host builds.
func I2C() (drivers.I2C, bool) { return nil, false }

// Halt prints the fatal line and exits the process with status 3.
func Halt(payload any) {
	_, _ = io.WriteString(stdout, Describe(payload)+"\n")
	exit(3)
}
