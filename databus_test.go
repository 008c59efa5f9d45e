package main

import (
	"testing"

	"github.com/matryer/is"
)

func TestDataBusWriteRead(t *testing.T) {
	is := is.New(t)
	var g GPIO
	bus := NewDataBus(&g)

	bus.Output()
	for _, v := range []byte{0x00, 0xa5, 0x5a, 0xff} {
		bus.Write(v)
		is.Equal(g.GetAll()&dataMask, uint32(v)<<PinData)
		is.Equal(bus.Read(), v)
	}

	bus.Input()
	g.Drive(dataMask, 0x3c<<PinData)
	is.Equal(bus.Read(), byte(0x3c))
}

func TestDataBusLeavesOtherLines(t *testing.T) {
	is := is.New(t)
	var g GPIO
	bus := NewDataBus(&g)

	g.SetDirMasked(controlMask, controlMask)
	g.PutMasked(controlMask, 1<<PinCS|1<<PinRW)
	bus.Output()
	bus.Write(0xff)
	bus.Input()

	is.Equal(g.GetAll()&controlMask, uint32(1<<PinCS|1<<PinRW))
	is.Equal(g.oe&controlMask, uint32(controlMask))
}

// Direction changes and writes must reach the bank as one masked update,
// never line by line.
func TestDataBusSingleUpdate(t *testing.T) {
	is := is.New(t)
	var p pinLog
	bus := NewDataBus(&p)

	bus.Output()
	bus.Write(0x81)
	bus.Input()
	is.Equal(p.ops, []string{
		"dir 01fe0000 01fe0000",
		"put 01fe0000 01020000",
		"dir 01fe0000 00000000",
	})
}

func TestGPIOInputsReadDevice(t *testing.T) {
	is := is.New(t)
	var g GPIO

	g.Drive(addrBusMask, sample(0x1234, 5))
	is.Equal(g.GetAll()&addrBusMask, sample(0x1234, 5))

	// outputs read back what the host drives, not the device
	g.SetDirMasked(maMask, maMask)
	g.PutMasked(maMask, 0)
	is.Equal(g.GetAll()&maMask, uint32(0))
	is.Equal(g.GetAll()&raMask, uint32(5)<<PinRA)
}
