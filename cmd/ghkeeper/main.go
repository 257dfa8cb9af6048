package main

import "github.com/dmitrymomot/ghkeeper/cmd/ghkeeper/cmd"

func main() {
	cmd.Execute()
}
