package main

import "github.com/frahmantamala/office-management/cmd"

func main() {
	cmd.Execute()
}
