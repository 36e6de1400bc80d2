package main

import "github.com/frahmantamala/campus-parking/cmd"

func main() {
	cmd.Execute()
}
