package main

import (
	"os"

	"github.com/ridge/basics/methods"
)

func main() {
	methods.Main(os.Args)
}
