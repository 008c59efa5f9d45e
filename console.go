package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Command is a single keystroke from the host.
type Command byte

const (
	CmdCharMode  Command = 'c'
	CmdPixelMode Command = 'p'
	CmdReset     Command = 'r'
	CmdVerify    Command = 'v'
	CmdDump      Command = 'd'
	CmdLightPen  Command = 'l'
	CmdQuit      Command = 'q'
)

// Profile returns the profile selected by the digit commands 1..9.
func (c Command) Profile() (Profile, bool) {
	n := int(c) - '1'
	if n < 0 || n >= len(Profiles) {
		return Profile{}, false
	}
	return Profiles[n], true
}

func (c Command) String() string {
	switch c {
	case CmdCharMode:
		return "char mode"
	case CmdPixelMode:
		return "pixel mode"
	case CmdReset:
		return "reset pattern"
	case CmdVerify:
		return "verify"
	case CmdDump:
		return "dump registers"
	case CmdLightPen:
		return "light pen"
	case CmdQuit:
		return "quit"
	}
	if p, ok := c.Profile(); ok {
		return "profile " + p.Name
	}
	return fmt.Sprintf("Command(%q)", byte(c))
}

// Commands is a non-blocking source of commands. Having nothing to say is
// not an error.
type Commands interface {
	Poll() (Command, bool)
}

// Queue is a fixed list of commands handed out in order.
type Queue []Command

func (q *Queue) Poll() (Command, bool) {
	if len(*q) == 0 {
		return 0, false
	}
	c := (*q)[0]
	*q = (*q)[1:]
	return c, true
}

// ParseQueue queues one command per byte of s.
func ParseQueue(s string) *Queue {
	q := make(Queue, 0, len(s))
	for i := 0; i < len(s); i++ {
		q = append(q, Command(s[i]))
	}
	return &q
}

// Chain polls each source in turn and returns the first command found.
type Chain []Commands

func (ch Chain) Poll() (Command, bool) {
	for _, c := range ch {
		if cmd, ok := c.Poll(); ok {
			return cmd, true
		}
	}
	return 0, false
}

// Console reads single keystrokes from a terminal or pipe without
// blocking.
type Console struct {
	f     *os.File
	fd    uintptr
	saved *unix.Termios
	buf   [1]byte
}

// OpenConsole prepares f for polling. A terminal is put in cbreak mode
// until Close; anything else is switched to non-blocking reads.
func OpenConsole(f *os.File) (*Console, error) {
	c := &Console{f: f, fd: f.Fd()}
	if !term.IsTerminal(int(c.fd)) {
		if err := unix.SetNonblock(int(c.fd), true); err != nil {
			return nil, fmt.Errorf("console: %w", err)
		}
		return c, nil
	}

	saved, err := tcget(c.fd)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	raw := *saved
	cbreak(&raw)
	if err := tcset(c.fd, &raw); err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	c.saved = saved
	return c, nil
}

func (c *Console) Poll() (Command, bool) {
	n, err := unix.Read(int(c.fd), c.buf[:])
	if err != nil || n != 1 {
		return 0, false
	}
	return Command(c.buf[0]), true
}

// Close restores the terminal.
func (c *Console) Close() error {
	if c.saved == nil {
		return nil
	}
	return tcset(c.fd, c.saved)
}
