package escpos

const (
	minFieldBytes = 1
	maxFieldBytes = 4
)

// Encodes a number as byteCount little endian bytes (low byte first), the way
// ESC/POS expects multi-byte parameters such as nL nH.
// Fails with a RangeError if byteCount isn't 1-4 or value needs more than
// byteCount bytes.
func IntLowHigh(value uint64, byteCount int) ([]byte, error) {
	return encodeField("number", value, byteCount)
}

func encodeField(field string, value uint64, byteCount int) ([]byte, error) {
	if byteCount < minFieldBytes || byteCount > maxFieldBytes {
		return nil, &RangeError{Field: field, Value: value, Bytes: byteCount}
	}

	max := uint64(1)<<(8*byteCount) - 1
	if value > max {
		return nil, &RangeError{Field: field, Value: value, Max: max, Bytes: byteCount}
	}

	out := make([]byte, byteCount)
	for i := range out {
		out[i] = byte(value & 0xFF)
		value >>= 8
	}
	return out, nil
}

// Negative dimensions wrap to huge values and fail the range check.
func encodeDimension(field string, value int, byteCount int) ([]byte, error) {
	return encodeField(field, uint64(value), byteCount)
}
