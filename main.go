package main

import (
	"os"

	"edbackup/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
