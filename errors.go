package main

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownProfile = errors.New("unknown profile")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrUnknownMode    = errors.New("unknown mode")
	ErrVerify         = errors.New("register verify failed")
)

// Mismatch is one register that read back differently from what was written.
type Mismatch struct {
	Reg       int
	Want, Got uint8
}

func (m Mismatch) String() string {
	return fmt.Sprintf("R%02d: want 0x%02X, got 0x%02X", m.Reg, m.Want, m.Got)
}

// VerifyError is returned by VerifyProfile when any readable register
// differs from the profile.
type VerifyError struct {
	Profile    string
	Mismatches []Mismatch
}

func (e *VerifyError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "profile %s:", e.Profile)
	for i, m := range e.Mismatches {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(' ')
		sb.WriteString(m.String())
	}
	return sb.String()
}

func (e *VerifyError) Unwrap() error { return ErrVerify }
