package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"
)

// pollBurst is how many address polls run back to back before the loop
// looks at commands, stats or cancellation.
const pollBurst = 1024

// Config selects the profile, timings and plane content of a Machine.
type Config struct {
	Profile string
	Mode    string // overrides the profile's mode when set
	Variant string

	Hold   time.Duration
	Settle time.Duration
	Mask   uint32

	Fill Filler
	Out  io.Writer
}

// Machine ties the GPIO bank, the register port, the ROM responder and the
// controller on the other side of the pins together.
type Machine struct {
	gpio *GPIO
	bus  *DataBus
	crtc *CRTC
	resp *Responder

	vram   VRAM
	glyphs *GlyphTable

	// ext is the controller; on a host it is clocked by the run loop.
	ext     *MC6845
	variant Variant
	clock   ClockGen
	frame   *Frame

	profile Profile
	mode    string
	out     io.Writer
	stats   *Stats
}

// NewMachine builds a machine from cfg. The planes start out holding the
// test pattern, overlaid by cfg.Fill if set.
func NewMachine(cfg Config) (*Machine, error) {
	if cfg.Profile == "" {
		cfg.Profile = "default"
	}
	if cfg.Variant == "" {
		cfg.Variant = VariantMC6845.Name
	}
	if cfg.Mask == 0 {
		cfg.Mask = DefaultSampleMask
	}
	p, err := LookupProfile(cfg.Profile)
	if err != nil {
		return nil, err
	}
	v, err := LookupVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if cfg.Mode != "" {
		if _, err := ParseMode(cfg.Mode); err != nil {
			return nil, err
		}
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}

	m := &Machine{
		gpio:    new(GPIO),
		glyphs:  NewGlyphTable(),
		variant: v,
		clock:   &PIOClock{SysHz: sysClockHz},
		frame:   NewFrame(0, 0),
		profile: p,
		mode:    cfg.Mode,
		out:     cfg.Out,
	}
	m.bus = NewDataBus(m.gpio)
	m.crtc = NewCRTC(m.gpio, m.bus)
	m.crtc.Hold = cfg.Hold
	m.crtc.Settle = cfg.Settle
	m.ext = NewMC6845(m.gpio, v)
	m.ext.Sink = m.latch

	m.vram.ResetPattern()
	if cfg.Fill != nil {
		if err := m.vram.Fill(cfg.Fill); err != nil {
			return nil, err
		}
	}
	m.resp = NewResponder(m.gpio, m.bus, &m.vram, m.glyphs, cfg.Mask)
	return m, nil
}

// Boot initialises the pins, starts the clock and programs the controller
// with the configured profile.
func (m *Machine) Boot() error {
	fmt.Fprintln(m.out, "Initializing MC6845...")
	m.crtc.Reset()
	m.gpio.SetDirMasked(addrBusMask, 0)

	if err := m.Apply(m.profile); err != nil {
		return err
	}
	if m.mode != "" {
		mode, _ := ParseMode(m.mode)
		m.vram.SetMode(mode)
	}
	return nil
}

// Apply switches to profile p: clock, registers, then mode.
func (m *Machine) Apply(p Profile) error {
	hz, err := m.clock.Start(PinCLK, p.ClockHz)
	if err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	ApplyProfile(m.crtc, p)
	m.profile = p
	m.vram.SetMode(p.Mode)
	m.frame.Resize(m.ext.Geometry())
	m.resp.Arm()

	fmt.Fprintf(m.out, "profile %s (%s), clock %.0f Hz for %.0f Hz, %s mode\n",
		p.Name, p.Description, hz, p.ClockHz, p.Mode)
	return nil
}

// Dump reads back R0..R17 through the register port.
func (m *Machine) Dump() {
	for r := uint8(0); r < 16; r++ {
		fmt.Fprintf(m.out, "R%02d = 0x%02X\n", r, m.crtc.ReadRegister(r))
		wait(3 * m.crtc.Settle)
	}
	hi := m.crtc.ReadRegister(R16LightPenHi)
	lo := m.crtc.ReadRegister(R17LightPenLo)
	fmt.Fprintf(m.out, "Light-pen R16/R17 = 0x%02X 0x%02X\n", hi, lo)
	m.resp.Arm()
}

// Verify reads back the current profile.
func (m *Machine) Verify() error {
	defer m.resp.Arm()
	return VerifyProfile(m.crtc, m.variant, m.profile)
}

// Handle carries out one command. It reports whether the command asks the
// loop to stop.
func (m *Machine) Handle(cmd Command) (bool, error) {
	switch cmd {
	case CmdCharMode:
		m.vram.SetMode(CharacterMode)
	case CmdPixelMode:
		m.vram.SetMode(PixelMode)
	case CmdReset:
		m.vram.ResetPattern()
	case CmdVerify:
		if err := m.Verify(); err != nil {
			return false, err
		}
		fmt.Fprintf(m.out, "profile %s verified\n", m.profile.Name)
	case CmdDump:
		m.Dump()
	case CmdLightPen:
		m.ext.LightPen()
		m.Dump()
	case CmdQuit:
		return true, nil
	default:
		p, ok := cmd.Profile()
		if !ok {
			return false, nil
		}
		return false, m.Apply(p)
	}
	return false, nil
}

// Step clocks the controller one character and lets the responder answer
// the new address. It reports the start of a new field.
func (m *Machine) Step() bool {
	field := m.ext.Tick()
	m.resp.Poll()
	return field
}

// Field steps until the controller starts a new field.
func (m *Machine) Field() {
	for !m.Step() {
	}
}

// Run serves addresses until cmds asks to quit or ctx is done. Commands,
// stats and cancellation are only looked at between bursts of polls.
func (m *Machine) Run(ctx context.Context, cmds Commands) error {
	m.resp.Arm()
	for {
		for i := 0; i < pollBurst; i++ {
			m.Step()
		}

		if cmd, ok := cmds.Poll(); ok {
			quit, err := m.Handle(cmd)
			switch {
			case errors.Is(err, ErrVerify):
				fmt.Fprintln(m.out, err)
			case err != nil:
				return err
			case quit:
				return nil
			}
		}

		if m.stats != nil {
			m.stats.tick(m.resp)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// SetStats enables periodic throughput reports.
func (m *Machine) SetStats(s *Stats) { m.stats = s }

// Frame returns the picture built from the bytes the controller latched.
func (m *Machine) Frame() *image.RGBA { return m.frame.Image() }

// Mode returns the current plane selection.
func (m *Machine) Mode() Mode { return m.vram.Mode() }

func (m *Machine) latch(col, line int, b byte) {
	m.frame.Put(col, line, b, m.vram.mode)
}
