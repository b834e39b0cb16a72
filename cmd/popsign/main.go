package main

import "github.com/Bidon15/popsign/cmd/popsign/cmd"

func main() {
	cmd.Execute()
}
