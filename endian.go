package aiff

// Swap16 reverses the byte order of n.
func Swap16(n uint16) uint16 {
	return (n&0xFF00)>>8 |
		(n&0x00FF)<<8
}

// Swap32 reverses the byte order of n.
func Swap32(n uint32) uint32 {
	return (n&0xFF000000)>>24 |
		(n&0x00FF0000)>>8 |
		(n&0x0000FF00)<<8 |
		(n&0x000000FF)<<24
}
