package main

import (
	"golang.org/x/sys/unix"
)

func tcget(fd uintptr) (*unix.Termios, error) {
	p, err := unix.IoctlGetTermios(int(fd), getTermios)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func tcset(fd uintptr, p *unix.Termios) error {
	return unix.IoctlSetTermios(int(fd), setTermios, p)
}

// cbreak turns off echo and line buffering and makes reads return at once
// with whatever is there. Signals still work so ^C stops the loop.
func cbreak(p *unix.Termios) {
	p.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	p.Iflag &^= unix.ICRNL | unix.IXON
	p.Cc[unix.VMIN] = 0
	p.Cc[unix.VTIME] = 0
}
