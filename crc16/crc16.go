// Package crc16 provides the 16-bit checksum used by DIAP frames.
//
// The checksum is CRC-16 with polynomial 0x1021, processed MSB first, with no
// input or output reflection and no final xor. With a zero seed this is the
// CRC-16/XMODEM variant.
package crc16

// Poly is the CRC-16 generator polynomial (x^16 + x^12 + x^5 + 1).
const Poly uint16 = 0x1021

// Func computes a 16-bit checksum of data starting from seed.
//
// Implementations must be deterministic and free of side effects.
type Func func(seed uint16, data []byte) uint16

// Default is the checksum used by DIAP when none is configured.
var Default Func = XModem

var table = func() [256]uint16 {
	var t [256]uint16
	for i := range 256 {
		crc := uint16(i) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ Poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}

	return t
}()

// XModem computes the table-driven CRC-16 of data starting from seed.
func XModem(seed uint16, data []byte) uint16 {
	crc := seed
	for _, b := range data {
		crc = table[byte(crc>>8)^b] ^ (crc << 8)
	}

	return crc
}

// Checksum computes the CRC-16 of data with a zero seed.
func Checksum(data []byte) uint16 {
	return XModem(0, data)
}
