package main

import (
	"fmt"
	"os"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/auth"
)

// Prints a bcrypt hash for the password given as the first argument.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: genhash <password>")
		os.Exit(2)
	}
	h, err := auth.HashPassword(os.Args[1], auth.DefaultCost)
	if err != nil {
		panic(err)
	}
	fmt.Println(h)
}
