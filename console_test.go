package main

import (
	"os"
	"testing"

	"github.com/matryer/is"
)

func TestQueue(t *testing.T) {
	is := is.New(t)
	q := ParseQueue("cp")

	c, ok := q.Poll()
	is.True(ok)
	is.Equal(c, CmdCharMode)
	c, ok = q.Poll()
	is.True(ok)
	is.Equal(c, CmdPixelMode)
	_, ok = q.Poll()
	is.True(!ok)
}

func TestChain(t *testing.T) {
	is := is.New(t)
	ch := Chain{ParseQueue("r"), ParseQueue("q")}

	c, _ := ch.Poll()
	is.Equal(c, CmdReset)
	c, _ = ch.Poll()
	is.Equal(c, CmdQuit)
	_, ok := ch.Poll()
	is.True(!ok)
}

func TestCommandProfile(t *testing.T) {
	is := is.New(t)

	p, ok := Command('3').Profile()
	is.True(ok)
	is.Equal(p.Name, "text80")
	_, ok = Command('0').Profile()
	is.True(!ok)
	_, ok = Command('9').Profile()
	is.True(!ok)

	is.Equal(Command('1').String(), "profile default")
	is.Equal(CmdVerify.String(), "verify")
	is.Equal(Command('z').String(), `Command('z')`)
}

func TestConsolePipe(t *testing.T) {
	is := is.New(t)
	r, w, err := os.Pipe()
	is.NoErr(err)
	defer r.Close()
	defer w.Close()

	cons, err := OpenConsole(r)
	is.NoErr(err)
	defer cons.Close()

	_, ok := cons.Poll()
	is.True(!ok) // nothing typed yet, and no blocking

	_, err = w.Write([]byte("p"))
	is.NoErr(err)
	c, ok := cons.Poll()
	is.True(ok)
	is.Equal(c, CmdPixelMode)

	_, ok = cons.Poll()
	is.True(!ok)
}
