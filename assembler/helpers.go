package assembler

// placeField ORs v into word with its least significant bit at shift.
func placeField(word, v uint32, shift int) uint32 {
	return word | v<<uint(shift)
}

// fits reports whether v can be stored in an unsigned field of the given width.
func fits(v uint32, bits int) bool {
	if bits >= 32 {
		return true
	}
	if bits <= 0 {
		return v == 0
	}
	return v>>uint(bits) == 0
}

// halfRegisters names the single-word halves of a double-word register:
// the first and fourth letters, then 'l' or 'h'.
func halfRegisters(double string) (low, high string, ok bool) {
	if len(double) != 4 {
		return "", "", false
	}
	stem := double[0:1] + double[3:4]
	return stem + "l", stem + "h", true
}
