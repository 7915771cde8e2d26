package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aussiebroadwan/renewal/internal/renewal/app"
)

const usage = `usage: renewal [command]

commands:
  serve                     run the HTTP service (default)
  hash-secret <secret>      print an argon2id hash for CRON_SECRET_HASH
  dev-token [flags]         mint a local signing key, its JWKS and a token
  set-plan <user-id> <plan> move a user to another plan
  grant-admin <user-id>     allow a user to edit cancellation guides
`

func main() {
	cmd := "serve"
	var args []string
	if len(os.Args) > 1 {
		cmd, args = os.Args[1], os.Args[2:]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve()
	case "hash-secret":
		err = hashSecret(args)
	case "dev-token":
		err = devToken(args)
	case "set-plan":
		err = setPlan(args)
	case "grant-admin":
		err = grantAdmin(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

func serve() error {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := application.Run(); err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	return nil
}
