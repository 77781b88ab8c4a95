package main

import "github.com/MyCarrier-DevOps/go-gradlevariant/cmd"

func main() {
	cmd.Execute()
}
