// crtrom emulates the character ROM behind an MC6845 CRT controller.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
)

type cli struct {
	Profile    string        `name:"profile" default:"default" help:"register profile: default, text40, text80 or gfx320"`
	Mode       string        `name:"mode" help:"override the profile's mode: char or pixel"`
	Variant    string        `name:"variant" default:"mc6845" help:"CRTC part: mc6845 or hd6845"`
	Strobe     time.Duration `name:"strobe" default:"1us" help:"minimum E hold at each level"`
	Settle     time.Duration `name:"settle" default:"10us" help:"gap between register writes"`
	Mask       string        `name:"mask" default:"0x1FFFF" help:"lines compared when looking for an address change"`
	LoadChars  string        `name:"load-chars" type:"existingfile" help:"raw character plane image"`
	LoadPixels string        `name:"load-pixels" type:"existingfile" help:"raw pixel plane image"`

	Run      runCmd      `cmd:"" default:"1" help:"program the CRTC and serve the address bus"`
	View     viewCmd     `cmd:"" help:"serve the address bus and show the result in a window"`
	Dump     dumpCmd     `cmd:"" help:"program the CRTC and read back its registers"`
	Verify   verifyCmd   `cmd:"" help:"apply profiles and check them by reading back"`
	Profiles profilesCmd `cmd:"" help:"list register profiles"`
}

func main() {
	var c cli
	ctx := kong.Parse(&c)
	err := ctx.Run(&c)
	ctx.FatalIfErrorf(err)
}

func (c *cli) machine() (*Machine, error) {
	mask, err := strconv.ParseUint(c.Mask, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("mask: %w", err)
	}
	cfg := Config{
		Profile: c.Profile,
		Mode:    c.Mode,
		Variant: c.Variant,
		Hold:    c.Strobe,
		Settle:  c.Settle,
		Mask:    uint32(mask),
		Out:     os.Stdout,
	}
	if c.LoadChars != "" || c.LoadPixels != "" {
		cfg.Fill = ImageFile{Chars: c.LoadChars, Pixels: c.LoadPixels}
	}
	m, err := NewMachine(cfg)
	if err != nil {
		return nil, err
	}
	return m, m.Boot()
}

type runCmd struct {
	Exec      string `name:"exec" help:"commands to run before reading the keyboard"`
	Stats     bool   `name:"stats" help:"print poll and serve counts every second"`
	Statsview bool   `name:"statsview" help:"serve runtime statistics over HTTP"`
}

func (r *runCmd) Run(c *cli) error {
	m, err := c.machine()
	if err != nil {
		return err
	}
	m.Dump()

	if r.Statsview {
		LaunchStatsview(os.Stdout)
	}
	if r.Stats {
		s := NewStats(os.Stdout, time.Second)
		defer s.Stop()
		m.SetStats(s)
	}

	cons, err := OpenConsole(os.Stdin)
	if err != nil {
		return err
	}
	defer cons.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("keys: c/p mode, r reset, 1-4 profile, v verify, d dump, l light pen, q quit")
	err = m.Run(ctx, Chain{ParseQueue(r.Exec), cons})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type viewCmd struct {
	Exec  string `name:"exec" help:"commands to run at start"`
	Scale int    `name:"scale" default:"2" help:"window scale"`
}

func (v *viewCmd) Run(c *cli) error {
	m, err := c.machine()
	if err != nil {
		return err
	}
	return view(m, ParseQueue(v.Exec), v.Scale)
}

type dumpCmd struct{}

func (d *dumpCmd) Run(c *cli) error {
	m, err := c.machine()
	if err != nil {
		return err
	}
	m.Dump()
	return nil
}

type verifyCmd struct {
	All bool `name:"all" help:"verify every profile in turn"`
}

func (v *verifyCmd) Run(c *cli) error {
	m, err := c.machine()
	if err != nil {
		return err
	}
	profiles := []Profile{m.profile}
	if v.All {
		profiles = Profiles
	}
	var failed error
	for _, p := range profiles {
		if err := m.Apply(p); err != nil {
			return err
		}
		if err := m.Verify(); err != nil {
			fmt.Println(err)
			failed = err
			continue
		}
		fmt.Printf("profile %s verified\n", p.Name)
	}
	return failed
}

type profilesCmd struct{}

func (profilesCmd) Run() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, p := range Profiles {
		fmt.Fprintf(w, "%s\t%s\t% X\n", p.Name, p.Description, p.Regs)
	}
	return w.Flush()
}
