package main

import (
	"os"

	"github.com/ridge/basics/params"
)

func main() {
	params.Main(os.Args)
}
