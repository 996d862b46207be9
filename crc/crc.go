// Package crc builds the forward (MSB-first) CRC-32 lookup table used to
// initialize the checksum ROM.
package crc

// Ethernet is the IEEE 802.3 generator polynomial
// x^32+x^26+x^23+x^22+x^16+x^12+x^11+x^10+x^8+x^7+x^5+x^4+x^2+x+1
// without its implicit x^32 term.
const Ethernet uint32 = 0x04c11db7

// Table holds one remainder per input byte, indexed by the byte value.
type Table [256]uint32

// MakeTable divides every byte value by poly and returns the remainders.
func MakeTable(poly uint32) *Table {
	t := new(Table)
	for i := 0; i < 256; i++ {
		t[i] = Entry(poly, byte(i))
	}
	return t
}

// EthernetTable returns a freshly built table for the Ethernet polynomial.
func EthernetTable() *Table {
	return MakeTable(Ethernet)
}

// Entry is the remainder of b, placed in the top byte, divided by poly.
func Entry(poly uint32, b byte) uint32 {
	s := Steps(poly, b)
	return s[7]
}

// Steps returns the accumulator after each of the 8 division steps for b.
func Steps(poly uint32, b byte) [8]uint32 {
	var s [8]uint32
	c := uint32(b) << 24
	for j := 0; j < 8; j++ {
		flag := (c >> 31) & 0b1
		c = c << 1
		if flag == 1 {
			c ^= poly
		}
		s[j] = c
	}
	return s
}

// Checksum runs data through t one byte at a time, starting from initial.
func Checksum(t *Table, data []byte, initial uint32, xorOut uint32) uint32 {
	c := initial
	for _, b := range data {
		c = (c << 8) ^ t[byte(c>>24)^b]
	}
	return c ^ xorOut
}
