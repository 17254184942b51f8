package main

import "github.com/summafin/summa/cmd"

func main() {
	cmd.Execute()
}
