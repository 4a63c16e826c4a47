// Package main provides a CLI tool for preparing admin credentials for the
// certificate portal: bcrypt password hashes for ADMIN_PASSWORD_HASH and
// random signing keys for SESSION_SIGNING_KEY.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lucky-arya/CSIxMKITOS/pkg/secrets"
)

type hashOutput struct {
	Hash  string            `json:"hash"`
	Usage map[string]string `json:"usage"`
}

type keyOutput struct {
	Key   string            `json:"key"`
	Usage map[string]string `json:"usage"`
}

func main() {
	// Subcommands
	hashCmd := flag.NewFlagSet("hash", flag.ExitOnError)
	keyCmd := flag.NewFlagSet("key", flag.ExitOnError)

	// Hash flags
	hashPassword := hashCmd.String("password", "", "Password to hash. Read from stdin if empty.")
	hashJSON := hashCmd.Bool("json", false, "Output as JSON")

	// Key flags
	keyJSON := keyCmd.Bool("json", false, "Output as JSON")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "hash":
		hashCmd.Parse(os.Args[2:])
		generateHash(*hashPassword, *hashJSON)
	case "key":
		keyCmd.Parse(os.Args[2:])
		generateKey(*keyJSON)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`adminhash - Prepare admin credentials for the certificate portal

Usage:
  adminhash <command> [flags]

Commands:
  hash    Hash an admin password with bcrypt
  key     Generate a random session signing key

Examples:
  # Hash a password passed as a flag
  adminhash hash -password "changeme"

  # Hash a password from stdin (keeps it out of shell history)
  echo -n "changeme" | adminhash hash

  # Generate a signing key for SESSION_SIGNING_KEY
  adminhash key

  # Output as JSON
  adminhash hash -password "changeme" -json

Use "adminhash <command> -h" for more information about a command.`)
}

func generateHash(password string, jsonOutput bool) {
	if password == "" {
		password = readPasswordFromStdin()
	}

	hash, err := secrets.Hash(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(hashOutput{
			Hash: hash,
			Usage: map[string]string{
				"env": "ADMIN_PASSWORD_HASH",
			},
		})
	} else {
		fmt.Println("Admin Password Hash (bcrypt)")
		fmt.Println("============================")
		fmt.Println()
		fmt.Println("Hash:")
		fmt.Println(hash)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  export ADMIN_PASSWORD_HASH='%s'\n", hash)
	}
}

func generateKey(jsonOutput bool) {
	key, err := secrets.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		printJSON(keyOutput{
			Key: key,
			Usage: map[string]string{
				"env": "SESSION_SIGNING_KEY",
			},
		})
	} else {
		fmt.Println("Session Signing Key")
		fmt.Println("===================")
		fmt.Println()
		fmt.Println("Key:")
		fmt.Println(key)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  export SESSION_SIGNING_KEY='%s'\n", key)
	}
}

func readPasswordFromStdin() string {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(os.Stderr, "Error: no password provided via -password or stdin")
		os.Exit(1)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		fmt.Fprintln(os.Stderr, "Error: password cannot be empty")
		os.Exit(1)
	}
	return password
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
