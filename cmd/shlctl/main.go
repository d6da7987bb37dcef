// Command shlctl operates the live pipeline from a shell.
//
// Usage:
//
//	shlctl tick
//	shlctl users add --id u1 --teams LHF,FBK --token 0a1b2c
//	shlctl users get u1
//	shlctl events <game-uuid>
//	shlctl teams resolve "frölunda"
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd(defaultAppFactory).Execute(); err != nil {
		os.Exit(1)
	}
}
