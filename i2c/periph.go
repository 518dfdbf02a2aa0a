package i2c

import (
	"github.com/pkg/errors"
	pi2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// PeriphBus shares one periph.io bus between several backpacks.
type PeriphBus struct {
	bus    pi2c.Bus
	closer func() error
}

// OpenPeriphBus loads the host drivers and opens the named bus ("" is the first one).
func OpenPeriphBus(name string) (*PeriphBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "i2c: periph host init")
	}
	bc, err := i2creg.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "i2c: open bus %q", name)
	}
	return &PeriphBus{bus: bc, closer: bc.Close}, nil
}

// NewPeriphBus wraps an already open bus; Close leaves it open.
func NewPeriphBus(bus pi2c.Bus) *PeriphBus {
	return &PeriphBus{bus: bus}
}

func (b *PeriphBus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// Unit returns the backpack at address.
func (b *PeriphBus) Unit(address uint16) *PeriphUnit {
	return &PeriphUnit{dev: &pi2c.Dev{Bus: b.bus, Addr: address}}
}

// PeriphUnit is one backpack on a PeriphBus.
type PeriphUnit struct {
	dev *pi2c.Dev
}

func (u *PeriphUnit) WriteCommand(cmd byte) error {
	return errors.Wrapf(u.dev.Tx([]byte{cmd}, nil), "i2c: command 0x%02x", cmd)
}

func (u *PeriphUnit) WriteCells(addr byte, cells []uint16) error {
	return errors.Wrapf(u.dev.Tx(CellBytes(addr, cells), nil), "i2c: write %s", u.dev)
}
