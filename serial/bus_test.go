// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serial_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retrokit/mos65xx/serial"
)

func TestWireAND(t *testing.T) {
	bus := serial.NewBus()
	host := bus.Port()
	drive := bus.Port()

	// All lines idle high.
	for _, l := range []serial.Line{serial.ATN, serial.CLK, serial.DATA} {
		assert.True(t, bus.IsHigh(l), "%v should idle high", l)
	}

	// One pull takes the line low.
	host.Pull(serial.CLK)
	assert.True(t, bus.IsLow(serial.CLK))
	assert.True(t, drive.IsLow(serial.CLK))

	// Releasing is not enough while another port still pulls.
	drive.Pull(serial.CLK)
	host.Release(serial.CLK)
	assert.True(t, bus.IsLow(serial.CLK))
	assert.False(t, host.Pulling(serial.CLK))
	assert.True(t, drive.Pulling(serial.CLK))

	drive.Release(serial.CLK)
	assert.True(t, bus.IsHigh(serial.CLK))

	// Lines are independent.
	host.Pull(serial.ATN)
	assert.True(t, bus.IsLow(serial.ATN))
	assert.True(t, bus.IsHigh(serial.DATA))
}

func TestPortSet(t *testing.T) {
	bus := serial.NewBus()
	p := bus.Port()

	p.Set(serial.DATA, true)
	assert.True(t, bus.IsLow(serial.DATA))
	p.Set(serial.DATA, false)
	assert.True(t, bus.IsHigh(serial.DATA))
}

func TestDetach(t *testing.T) {
	bus := serial.NewBus()
	p := bus.Port()
	p.Pull(serial.DATA)
	assert.True(t, bus.IsLow(serial.DATA))

	// Detaching releases everything the port held.
	p.Detach()
	assert.True(t, bus.IsHigh(serial.DATA))

	// A detached port can no longer drive the bus.
	p.Pull(serial.DATA)
	assert.True(t, bus.IsHigh(serial.DATA))
}

func TestHandshakeAcrossGoroutines(t *testing.T) {
	bus := serial.NewBus()
	host := bus.Port()
	drive := bus.Port()

	// The drive holds DATA low until it sees the host assert ATN and CLK,
	// mimicking the listener handshake.
	drive.Pull(serial.DATA)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for !(drive.IsLow(serial.ATN) && drive.IsHigh(serial.CLK)) {
			runtime.Gosched()
		}
		drive.Release(serial.DATA)
	}()

	host.Pull(serial.ATN)
	host.Release(serial.CLK)
	<-done

	assert.True(t, bus.IsHigh(serial.DATA))
	assert.True(t, bus.IsLow(serial.ATN))
}
