package main

import (
	"fmt"
	"os"

	"github.com/cgpnunez/mural/internal/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpass <password>")
		os.Exit(1)
	}

	fmt.Println(auth.Digest(os.Args[1]))
}
