//go:build !headless

package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyCommands = map[ebiten.Key]Command{
	ebiten.KeyC:      CmdCharMode,
	ebiten.KeyP:      CmdPixelMode,
	ebiten.KeyR:      CmdReset,
	ebiten.KeyV:      CmdVerify,
	ebiten.KeyD:      CmdDump,
	ebiten.KeyL:      CmdLightPen,
	ebiten.KeyQ:      CmdQuit,
	ebiten.KeyEscape: CmdQuit,
	ebiten.Key1:      '1',
	ebiten.Key2:      '2',
	ebiten.Key3:      '3',
	ebiten.Key4:      '4',
}

// viewer shows one field per frame in a window. Scanlines are doubled to
// get roughly the aspect ratio of a 4:3 monitor.
type viewer struct {
	m    *Machine
	cmds Commands
	keys Queue
	img  *ebiten.Image
	keyb []ebiten.Key
}

func (v *viewer) Update() error {
	v.keyb = inpututil.AppendJustPressedKeys(v.keyb[:0])
	for _, k := range v.keyb {
		if c, ok := keyCommands[k]; ok {
			v.keys = append(v.keys, c)
		}
	}

	for {
		cmd, ok := Chain{&v.keys, v.cmds}.Poll()
		if !ok {
			break
		}
		quit, err := v.m.Handle(cmd)
		switch {
		case errors.Is(err, ErrVerify):
			fmt.Fprintln(v.m.out, err)
		case err != nil:
			return err
		case quit:
			return ebiten.Termination
		}
	}

	v.m.Field()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	frame := v.m.Frame()
	size := frame.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	if v.img == nil || v.img.Bounds().Size() != size {
		v.img = ebiten.NewImage(size.X, size.Y)
	}
	v.img.WritePixels(frame.Pix)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(1, 2)
	screen.DrawImage(v.img, &op)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	size := v.m.Frame().Bounds().Size()
	return max(size.X, 1), max(2*size.Y, 1)
}

// view opens a window onto m and runs until it is closed or a quit command
// arrives.
func view(m *Machine, cmds Commands, scale int) error {
	size := m.Frame().Bounds().Size()
	ebiten.SetWindowSize(max(size.X, 320)*scale, max(2*size.Y, 200)*scale)
	ebiten.SetWindowTitle("crtrom: " + m.profile.Name)
	ebiten.SetWindowResizable(true)

	err := ebiten.RunGame(&viewer{m: m, cmds: cmds})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
