package domain

// IsValidWalletAddress checks the basic shape of an external settlement
// address: 0x-prefixed, 42 characters, hex digits only. Deeper validation
// (checksums, chain membership) belongs to the settlement system.
func IsValidWalletAddress(address string) bool {
	if len(address) != 42 || address[0] != '0' || address[1] != 'x' {
		return false
	}
	for i := 2; i < len(address); i++ {
		c := address[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
