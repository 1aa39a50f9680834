// manager-password prints the bcrypt hash to put in MANAGER_PASSWORD_HASH.
//
// Usage:
//
//	go run ./cmd/manager-password -password 'S3cret-Espresso!'
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goodlandcafe/pos_backend/utils"
)

func main() {
	password := flag.String("password", "", "Required: manager password to hash")
	flag.Parse()

	if strings.TrimSpace(*password) == "" {
		fmt.Fprintln(os.Stderr, "--password is required")
		os.Exit(1)
	}
	hashed, err := utils.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(hashed))
}
