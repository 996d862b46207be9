package crc

import "github.com/cockroachdb/errors"

// ErrTableMismatch marks a table that does not reproduce the catalogue values.
var ErrTableMismatch = errors.New("crc table mismatch")

// CheckInput is the conventional input for catalogue check values.
var CheckInput = []byte("123456789")

type checkValue struct {
	name   string
	init   uint32
	xorOut uint32
	want   uint32
}

// forward (non-reflected) 0x04c11db7 variants
var checkValues = []checkValue{
	{name: "CRC-32/BZIP2", init: 0xffffffff, xorOut: 0xffffffff, want: 0xfc891918},
	{name: "CRC-32/MPEG-2", init: 0xffffffff, xorOut: 0x0, want: 0x0376e6e7},
}

// Verify checks an Ethernet table against the published check values.
// A reflected table, or one built with a wrong shift direction, fails here.
func Verify(t *Table) error {
	if t[0] != 0 {
		return errors.Mark(errors.Newf("entry 0 is 0x%08x, want 0", t[0]), ErrTableMismatch)
	}
	for _, cv := range checkValues {
		if got := Checksum(t, CheckInput, cv.init, cv.xorOut); got != cv.want {
			return errors.Mark(
				errors.Newf("%s check value is 0x%08x, want 0x%08x", cv.name, got, cv.want),
				ErrTableMismatch)
		}
	}
	return nil
}
