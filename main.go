package main

import "github.com/nakamaio/create-iota-app/cmd"

func main() {
	cmd.Execute()
}
