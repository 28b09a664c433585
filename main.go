package main

import "github.com/frahmantamala/toolbox/cmd"

func main() {
	cmd.Execute()
}
