package vm

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Oid identifies an object. Its textual form is an underscore followed by
// 11 base-62 digits for Hi and 7 base-62 digits for Lo, most significant
// digit first, e.g. "_41OFI3r0S1t03qdB2E".
type Oid struct {
	Hi uint64
	Lo uint64
}

const (
	oidDigits   = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	oidBase     = 62
	oidHiDigits = 11
	oidLoDigits = 7

	// OidLen is the length of the textual form of an oid.
	OidLen = 1 + oidHiDigits + oidLoDigits
)

// Bounds on the two halves. Hi always starts with a decimal digit.
const (
	oidMinHi uint64 = oidBase * oidBase * oidBase
	oidMaxHi uint64 = 10 * 62 * 62 * 62 * 62 * 62 * 62 * 62 * 62 * 62 * 62
	oidMinLo uint64 = oidBase * oidBase
	oidMaxLo uint64 = 62 * 62 * 62 * 62 * 62 * 62 * 62
)

// NewOid returns a fresh random oid.
func NewOid() Oid {
	u := uuid.New()
	hi := binary.BigEndian.Uint64(u[:8])
	lo := binary.BigEndian.Uint64(u[8:])
	return Oid{
		Hi: oidMinHi + hi%(oidMaxHi-oidMinHi),
		Lo: oidMinLo + lo%(oidMaxLo-oidMinLo),
	}
}

// ParseOid parses the textual form of an oid.
func ParseOid(s string) (Oid, error) {
	if len(s) != OidLen || s[0] != '_' {
		return Oid{}, fmt.Errorf("invalid oid %q: want '_' followed by %d base-62 digits", s, OidLen-1)
	}
	// Eleven base-62 digits overflow uint64 unless the first is decimal.
	if s[1] < '0' || s[1] > '9' {
		return Oid{}, fmt.Errorf("invalid oid %q: must start with a decimal digit", s)
	}
	hi, err := parseBase62(s[1 : 1+oidHiDigits])
	if err != nil {
		return Oid{}, fmt.Errorf("invalid oid %q: %w", s, err)
	}
	lo, err := parseBase62(s[1+oidHiDigits:])
	if err != nil {
		return Oid{}, fmt.Errorf("invalid oid %q: %w", s, err)
	}
	oid := Oid{Hi: hi, Lo: lo}
	if !oid.Valid() {
		return Oid{}, fmt.Errorf("invalid oid %q: out of range", s)
	}
	return oid, nil
}

// MustParseOid is like ParseOid but panics on malformed input.
// It is meant for compiled-in constants.
func MustParseOid(s string) Oid {
	oid, err := ParseOid(s)
	if err != nil {
		panic("vm: " + err.Error())
	}
	return oid
}

func parseBase62(s string) (uint64, error) {
	var n uint64
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d < 0 {
			return 0, fmt.Errorf("bad digit %q", s[i])
		}
		n = n*oidBase + uint64(d)
	}
	return n, nil
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 36
	}
	return -1
}

// Valid reports whether both halves are within their ranges.
func (o Oid) Valid() bool {
	return o.Hi >= oidMinHi && o.Hi < oidMaxHi && o.Lo >= oidMinLo && o.Lo < oidMaxLo
}

// IsZero reports whether o is the zero oid.
func (o Oid) IsZero() bool {
	return o.Hi == 0 && o.Lo == 0
}

// Less orders oids by Hi then Lo.
func (o Oid) Less(other Oid) bool {
	if o.Hi != other.Hi {
		return o.Hi < other.Hi
	}
	return o.Lo < other.Lo
}

// Compare returns -1, 0 or +1.
func (o Oid) Compare(other Oid) int {
	switch {
	case o.Less(other):
		return -1
	case other.Less(o):
		return 1
	}
	return 0
}

// String returns the textual form of o.
func (o Oid) String() string {
	var buf [OidLen]byte
	buf[0] = '_'
	formatBase62(buf[1:1+oidHiDigits], o.Hi)
	formatBase62(buf[1+oidHiDigits:], o.Lo)
	return string(buf[:])
}

func formatBase62(dst []byte, n uint64) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = oidDigits[n%oidBase]
		n /= oidBase
	}
}
