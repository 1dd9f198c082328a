package main

import "github.com/nutralab/quantisim/cmd"

func main() {
	cmd.Execute()
}
