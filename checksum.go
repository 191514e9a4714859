package golin

// Checksum computes the LIN checksum over data, seeded with the protected
// identifier (enhanced checksum, LIN 2.0). Identifiers 0x3C..0x3F are
// reserved for configuration and diagnostics and always fall back to the
// classic sum, so the seed is dropped for them no matter what pid carries
// in its parity bits.
//
// The sum is byte-wise with end-around carry: any carry into the high
// byte is folded back into the low byte before the result is inverted.
// See LIN Specification 2.2A, 2.8.3.
func Checksum(pid byte, data []byte) byte {
	sum := uint16(pid)
	if pid&MaxFrameID >= 0x3C {
		sum = 0
	}
	for _, b := range data {
		sum += uint16(b)
	}
	for sum>>8 > 0 {
		sum = sum&0xFF + sum>>8
	}
	return ^byte(sum)
}

// ChecksumClassic computes the LIN 1.x checksum, which never includes the
// protected identifier.
func ChecksumClassic(data []byte) byte {
	return Checksum(0, data)
}

func validChecksum(pid byte, data []byte, received byte) bool {
	return received == Checksum(pid, data)
}
