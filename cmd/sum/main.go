package main

import (
	"os"

	"github.com/ridge/basics/sum"
)

func main() {
	sum.Main(os.Args)
}
