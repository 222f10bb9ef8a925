//go:build linux || darwin || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

// enterRawMode disables echo and line buffering of the terminal and returns
// a function that restores the previous mode. Signal generation stays
// enabled so that Ctrl+C still interrupts the program.
func enterRawMode(fd int) (func() error, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}

	previous := *termios
	state := *termios

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	state.Cc[unix.VMIN] = 1
	state.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &state); err != nil {
		return nil, err
	}

	return func() error {
		return unix.IoctlSetTermios(fd, ioctlSetTermios, &previous)
	}, nil
}
