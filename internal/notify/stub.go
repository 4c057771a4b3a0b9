//go:build !linux

package notify

// New returns Disabled on non-Linux platforms.
func New() (Notifier, error) {
	return Disabled{}, nil
}
