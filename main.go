// Package main provides the entry point for the microscope camera tool.
package main

import (
	"log"

	"github.com/daserban31/MicroscopeCamera/cmd"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	cmd.Execute()
}
