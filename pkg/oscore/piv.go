package oscore

import "encoding/binary"

// TrimToPIV encodes seq as the minimal big-endian Partial IV (RFC 8613
// §6.1): no leading zero byte, except seq == 0 which encodes as the single
// byte 0x00. Callers must have already checked seq < 2^40; TrimToPIV itself
// only trims, it does not re-validate the range.
func TrimToPIV(seq uint64) []byte {
	if seq == 0 {
		return []byte{0x00}
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	i := 0
	for i < len(buf)-1 && buf[i] == 0 {
		i++
	}
	return append([]byte(nil), buf[i:]...)
}
