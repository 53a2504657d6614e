package main

import "row-merger/cmd"

func main() {
	cmd.Execute()
}
