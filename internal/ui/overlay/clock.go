package overlay

import "fmt"

// FormatClock renders seconds as MM:SS. Negative values show as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
