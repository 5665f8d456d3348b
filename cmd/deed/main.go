package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	commands := map[string]func([]string) error{
		"create":   create,
		"mint":     mint,
		"transfer": transfer,
		"approve":  approve,
		"operator": operator,
		"burn":     burn,
		"pause":    pause,
		"unpause":  unpause,
		"info":     info,
		"uri":      uri,
		"events":   events,
		"export":   export,
		"attest":   attestCmd,
		"verify":   verifyCmd,
	}

	switch command {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("deed version 1.0.0")
	default:
		run, ok := commands[command]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
			printUsage()
			os.Exit(1)
		}
		if err := run(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Println(`deed - single-authority asset registry tool

Usage: deed <command> [options]

Collection:
  create      Create a collection from a YAML config
  info        Show collection metadata, supply, and balances
  uri         Show the metadata URI for a token

Operations:
  mint        Issue a token (admin only)
  transfer    Transfer a token
  approve     Set or revoke the approved spender for a token
  operator    Grant or revoke blanket operator approval
  burn        Retire a token (owner only)
  pause       Pause minting (admin only)
  unpause     Resume minting (admin only)

Notification log:
  events      List journaled notifications
  export      Export the notification log as CSV or JSONL

Attestation:
  attest      Produce a zero-knowledge receipt for a transition
  verify      Verify a receipt

Other:
  help        Show this help
  version     Show version

Run 'deed <command> -h' for command options.`)
}
