package main

import (
	"os"

	"github.com/ridge/basics/fetch"
)

func main() {
	fetch.Main(os.Args)
}
