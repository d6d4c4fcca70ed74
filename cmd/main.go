// Command eyerest is a work/rest timer that covers every display with a
// countdown during rest phases.
package main

func main() {
	Execute()
}
