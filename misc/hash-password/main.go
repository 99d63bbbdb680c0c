package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Small helper for seeding: prints the bcrypt hash of the given password so
// it can be pasted into schema.sql or a manual INSERT.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: hash-password <password>")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(string(hash))
}
