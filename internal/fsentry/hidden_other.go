//go:build !unix

package fsentry

// IsHidden applies no filtering outside POSIX systems
func IsHidden(_ string) bool {
	return false
}
