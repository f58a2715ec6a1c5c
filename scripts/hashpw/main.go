// scripts/hashpw/main.go
//
// Small helper to produce a bcrypt hash for seeding test users:
//
//	go run ./scripts/hashpw -password "secret" -cost 12
package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := flag.String("password", "", "password to hash")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if *password == "" {
		log.Fatal("usage: hashpw -password <password> [-cost <n>]")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), *cost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	fmt.Println(string(hash))
}
