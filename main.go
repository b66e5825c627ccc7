package main

import "github.com/iburimskiy/polyrhythm-metronome/cmd"

func main() {
	cmd.Execute()
}
