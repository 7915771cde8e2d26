package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/app"
	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
	"github.com/aussiebroadwan/renewal/internal/renewal/service"
	"github.com/aussiebroadwan/renewal/pkg/cryptox"
	"github.com/aussiebroadwan/renewal/pkg/jwtx"
	"github.com/google/uuid"
)

// hashSecret reads the secret from the argument or, when absent, from stdin
// so it stays out of shell history.
func hashSecret(args []string) error {
	var secret string
	if len(args) > 0 {
		secret = args[0]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read secret: %w", err)
		}
		secret = strings.TrimRight(line, "\r\n")
	}
	if secret == "" {
		return errors.New("secret must not be empty")
	}

	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func devToken(args []string) error {
	fs := flag.NewFlagSet("dev-token", flag.ExitOnError)
	subject := fs.String("sub", uuid.NewString(), "user id (token subject)")
	email := fs.String("email", "dev@example.com", "user email")
	issuer := fs.String("issuer", "", "token issuer, match AUTH_ISSUER")
	audience := fs.String("aud", "authenticated", "token audience")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return err
	}
	signer, err := jwtx.NewSigner(jwtx.AlgEdDSA, "dev-"+uuid.NewString()[:8], pemKey)
	if err != nil {
		return err
	}

	jwks, err := json.Marshal(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}})
	if err != nil {
		return err
	}
	claims := jwtx.NewClaims(*subject, *email, *ttl, *issuer, []string{*audience}, time.Now())
	token, err := signer.Sign(claims)
	if err != nil {
		return err
	}

	fmt.Printf("AUTH_ALGORITHM=%s\n", jwtx.AlgEdDSA)
	fmt.Printf("AUTH_JWKS_JSON='%s'\n", jwks)
	fmt.Printf("\n# user %s <%s>, expires %s\n", *subject, *email, claims.ExpiresAt.Format(time.RFC3339))
	fmt.Println(token)
	return nil
}

func setPlan(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: renewal set-plan <user-id> <plan>")
	}
	return withUsers(func(ctx context.Context, users *service.UserService) error {
		if err := users.SetPlan(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("user %s is now on the %s plan\n", args[0], args[1])
		return nil
	})
}

func grantAdmin(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: renewal grant-admin <user-id>")
	}
	return withUsers(func(ctx context.Context, users *service.UserService) error {
		if err := users.GrantSuperAdmin(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("user %s can now edit cancellation guides\n", args[0])
		return nil
	})
}

// withUsers opens the configured database for a one-off operator command.
// Users only exist after their first authenticated request.
func withUsers(fn func(context.Context, *service.UserService) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := app.LoadConfig()
	db, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	plans := domain.DefaultPlans()
	if cfg.PlansFile != "" {
		data, err := os.ReadFile(cfg.PlansFile)
		if err != nil {
			return err
		}
		if plans, err = domain.ParsePlans(data); err != nil {
			return err
		}
	}

	return fn(ctx, &service.UserService{Store: db, Plans: plans})
}
