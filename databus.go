package main

// DataBus is the 8 bit bidirectional bus shared by the MC6845 register
// port and the emulated character ROM.
type DataBus struct {
	pins Pins
}

// NewDataBus returns a bus over D0..D7 of pins.
func NewDataBus(pins Pins) *DataBus {
	return &DataBus{pins: pins}
}

// Output turns all eight lines around to drive the bus.
func (d *DataBus) Output() { d.pins.SetDirMasked(dataMask, dataMask) }

// Input releases all eight lines so the bus can be sampled.
func (d *DataBus) Input() { d.pins.SetDirMasked(dataMask, 0) }

func (d *DataBus) Write(v byte) {
	d.pins.PutMasked(dataMask, uint32(v)<<PinData)
}

func (d *DataBus) Read() byte {
	return byte(d.pins.GetAll() & dataMask >> PinData)
}
