package uniuri

import "crypto/rand"

// StdLen is a standard length of uniuri string to achieve ~95 bits of entropy.
const StdLen = 16

// StdChars is the set of characters allowed in generated strings. All are
// URL-safe, so codes can be embedded in share links without escaping.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a new random string of the standard length.
func New() string {
	return NewLen(StdLen)
}

// NewLen returns a new random string of the provided length, consisting of
// standard characters.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a new random string of the provided length,
// consisting of the provided characters (between 2 and 256). Bytes from
// crypto/rand are rejection-sampled to keep the distribution uniform.
func NewLenChars(length int, chars []byte) string {
	if length == 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > 256 {
		panic("uniuri: wrong charset length for NewLenChars")
	}

	// Largest byte value that keeps chars[b%clen] unbiased.
	maxrb := 255 - (256 % clen)

	out := make([]byte, length)
	buf := make([]byte, length+length/2)
	i := 0

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) > maxrb {
				continue
			}

			out[i] = chars[int(b)%clen]
			i++
			if i == length {
				return string(out)
			}
		}
	}
}
