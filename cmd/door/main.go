package main

import "github.com/oshokin/timed-door/cmd/door/cmd"

func main() {
	cmd.Execute()
}
