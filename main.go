package main

import "github.com/chrisdamba/lunchrush/cmd"

func main() {
	cmd.Execute()
}
