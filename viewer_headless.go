//go:build headless

package main

import "errors"

func view(m *Machine, cmds Commands, scale int) error {
	return errors.New("viewer not built: rebuild without the headless tag")
}
