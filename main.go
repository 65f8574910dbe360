package main

import "github.com/alexiusacademia/gomdm/cmd"

func main() {
	cmd.Execute()
}
