// +build !windows

package main

import (
	"fmt"
	"os"

	term "github.com/pkg/term"
	"golang.org/x/sys/unix"
)

// terminalWidth reports the host terminal's column count via the
// same TIOCGWINSZ ioctl console_linux.go uses, falling back to 80
// when stdout isn't a terminal at all.
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 80
	}
	return int(ws.Col)
}

// readLine reads one line from /dev/tty in raw mode, with backspace
// and up/down history recall, the same terminal-handling idiom the
// teacher's console_linux.go/console_unix.go use for its own
// character-at-a-time input loop, trimmed to what a line-oriented
// REPL needs. ok is false at end of input (Ctrl-D).
func readLine(prompt string) (string, bool) {
	fmt.Print(prompt)

	tt, err := term.Open("/dev/tty")
	if err != nil {
		return readLineFallback()
	}
	defer tt.Close()
	term.RawMode(tt)
	defer tt.Restore()

	var buf []byte
	histIdx := len(history)
	one := make([]byte, 1)

	for {
		n, err := tt.Read(one)
		if err != nil || n == 0 {
			return "", false
		}
		switch one[0] {
		case '\r', '\n':
			fmt.Print("\r\n")
			line := string(buf)
			if line != "" {
				history = append(history, line)
			}
			return line, true
		case 4: // Ctrl-D
			if len(buf) == 0 {
				return "", false
			}
		case 3: // Ctrl-C
			fmt.Print("\r\n")
			buf = buf[:0]
			fmt.Print(prompt)
		case 127, 8: // backspace
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				fmt.Print("\b \b")
			}
		case 27: // escape sequence: arrow keys for history recall
			var seq [2]byte
			tt.Read(seq[:])
			if seq[0] == '[' && (seq[1] == 'A' || seq[1] == 'B') {
				if seq[1] == 'A' && histIdx > 0 {
					histIdx--
				} else if seq[1] == 'B' && histIdx < len(history) {
					histIdx++
				}
				redraw := ""
				if histIdx < len(history) {
					redraw = history[histIdx]
				}
				clearLine(len(buf))
				fmt.Print(prompt, redraw)
				buf = []byte(redraw)
			}
		default:
			buf = append(buf, one[0])
			os.Stdout.Write(one)
		}
	}
}

var history []string

func clearLine(n int) {
	for i := 0; i < n; i++ {
		fmt.Print("\b \b")
	}
}

func readLineFallback() (string, bool) {
	var buf []byte
	one := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(one)
		if err != nil || n == 0 {
			if len(buf) == 0 {
				return "", false
			}
			return string(buf), true
		}
		if one[0] == '\n' {
			return string(buf), true
		}
		buf = append(buf, one[0])
	}
}
