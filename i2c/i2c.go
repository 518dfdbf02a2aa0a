// Package i2c talks to HT16K33 backpacks, either through /dev/i2c-N, through
// periph.io, or simulated by logging every write.
package i2c

import (
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/pkg/errors"
)

type I2C struct {
	fd      *os.File
	address uint8
	fd_sim  bool
}

const (
	I2C_SLAVE = 0x0703
)

func logWrite(address uint8, buf []uint8) error {
	var sb strings.Builder
	for i := 0; i < len(buf); i++ {
		fmt.Fprintf(&sb, "%02x ", buf[i])
	}
	log.Printf("Write 0x%02x: %s", address, strings.TrimSpace(sb.String()))
	return nil
}

// CellBytes lays out a RAM write: the start address, then each cell high
// byte first.
func CellBytes(addr byte, cells []uint16) []byte {
	buf := make([]byte, 1, 1+2*len(cells))
	buf[0] = addr
	for _, c := range cells {
		buf = append(buf, byte(c>>8), byte(c))
	}
	return buf
}

// open a connection to the i2c device
func Open(address uint8, bus int, simulated bool) (*I2C, error) {
	if simulated {
		log.Printf("Open (simulated): bus %d @ 0x%02x", bus, address)
		return &I2C{fd_sim: true, address: address, fd: nil}, nil
	}
	path := fmt.Sprintf("/dev/i2c-%d", bus)
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "i2c: open %s", path)
	}
	if err := ioctl(f.Fd(), I2C_SLAVE, uintptr(address)); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "i2c: select 0x%02x", address)
	}
	return &I2C{fd: f, address: address, fd_sim: false}, nil
}

func (d *I2C) Close() error {
	if d.fd_sim {
		log.Printf("Close: 0x%02x", d.address)
		return nil
	}
	return d.fd.Close()
}

// WriteCommand writes a command-style byte
func (d *I2C) WriteCommand(cmd byte) error {
	return d.write([]byte{cmd})
}

// WriteCells writes a block of display RAM starting at addr
func (d *I2C) WriteCells(addr byte, cells []uint16) error {
	return d.write(CellBytes(addr, cells))
}

func (d *I2C) write(buf []byte) error {
	if d.fd_sim {
		return logWrite(d.address, buf)
	}
	// not MT safe for i2c, several units can share the bus fd
	if err := ioctl(d.fd.Fd(), I2C_SLAVE, uintptr(d.address)); err != nil {
		return errors.Wrapf(err, "i2c: select 0x%02x", d.address)
	}
	if _, err := d.fd.Write(buf); err != nil {
		return errors.Wrapf(err, "i2c: write 0x%02x", d.address)
	}
	return nil
}

func ioctl(fd, cmd, arg uintptr) error {
	_, _, err := syscall.Syscall6(syscall.SYS_IOCTL, fd, cmd, arg, 0, 0, 0)
	if err != 0 {
		return err
	}
	return nil
}
