package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Prints bcrypt hashes for the passwords given on the command line, for
// seeding admin accounts directly in SQL.
func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"admin123456"}
	}

	for _, pass := range args {
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), 10)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, string(hash))
	}
}
