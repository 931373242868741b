//go:build !windows

package windows

func IsElevated() bool {
	return false
}
