package entity

// Identity is the opaque token that names a participant on the chain. Two
// identities are the same participant exactly when the strings are equal.
type Identity string

// String returns the string representation of the Identity.
func (i Identity) String() string {
	return string(i)
}

// IsZero checks if the Identity is unset.
func (i Identity) IsZero() bool {
	return i == ""
}
