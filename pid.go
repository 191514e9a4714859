package golin

// ProtectedID combines a 6-bit frame identifier with its two parity bits:
//
//	0..5  frame identifier
//	6     p0 = b0 ^ b1 ^ b2 ^ b4
//	7     p1 = !(b1 ^ b3 ^ b4 ^ b5)
func ProtectedID(id uint8) uint8 {
	p0 := bit(id, 0) ^ bit(id, 1) ^ bit(id, 2) ^ bit(id, 4)
	p1 := ^(bit(id, 1) ^ bit(id, 3) ^ bit(id, 4) ^ bit(id, 5)) & 0x01
	return p1<<7 | p0<<6 | id&MaxFrameID
}

func bit(v uint8, n uint8) uint8 {
	return v >> n & 0x01
}
