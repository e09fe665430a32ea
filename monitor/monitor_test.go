// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package monitor_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrokit/mos65xx/cpu"
	"github.com/retrokit/mos65xx/monitor"
)

// Run a monitor command script and return the captured output.
func runScript(script string) string {
	m := monitor.New(cpu.CMOS65C02)
	var out bytes.Buffer
	m.RunCommands(strings.NewReader(script), &out, false)
	return out.String()
}

func TestEvaluate(t *testing.T) {
	out := runScript(
		"evaluate 2+3\n" +
			"evaluate ($100 + 8) * 2\n" +
			"evaluate $10ff & $ff00\n" +
			"evaluate 1 << 4\n" +
			"evaluate -1\n",
	)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"$0005", "$0210", "$1000", "$0010", "$FFFF"}, lines)
}

func TestBreakpointCommands(t *testing.T) {
	out := runScript(
		"breakpoint add $1000\n" +
			"breakpoint add $2000\n" +
			"breakpoint disable $2000\n" +
			"breakpoint list\n",
	)
	assert.Contains(t, out, "$1000 true")
	assert.Contains(t, out, "$2000 false")
}

func TestRegisterSet(t *testing.T) {
	out := runScript(
		"set a $5e\n" +
			"set x 3\n" +
			"set carry 1\n" +
			"registers\n",
	)
	assert.Contains(t, out, "Register A set to $5E.")
	assert.Contains(t, out, "Register X set to $03.")
	assert.Contains(t, out, "Register CARRY set to true.")
	assert.Contains(t, out, "A=5E")
}

func TestMemorySetAndDump(t *testing.T) {
	out := runScript(
		"memory set $2000 $41 $42\n" +
			"memory dump $2000 2\n",
	)
	assert.Contains(t, out, "41 42")
	assert.Contains(t, out, "AB") // printable-character column
}
