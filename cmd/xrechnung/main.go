package main

import "github.com/jhoicas/xrechnung-api/internal/interfaces/cli"

func main() {
	cli.Execute()
}
