package main

import "github.com/selliott512/image-utils/cmd"

func main() {
	cmd.Execute()
}
