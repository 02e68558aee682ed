package main

import "github.com/OpenTraceLab/OpenTraceWave/cmd/otwave/cmd"

func main() {
	cmd.Execute()
}
