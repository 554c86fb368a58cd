package main

import "github.com/oshokin/timed-door/cmd/door-server/cmd"

func main() {
	cmd.Execute()
}
