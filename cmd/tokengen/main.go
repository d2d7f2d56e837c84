// Command tokengen mints a service JWT for callers of the risk API.
//
//	tokengen -subject payments-api
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"transfer-risk-engine/config"
	"transfer-risk-engine/internal/service"
)

func main() {
	subject := flag.String("subject", "", "calling service name (required)")
	configFile := flag.String("config", os.Getenv("TRE_CONFIG_FILE"), "optional YAML config file")
	expiry := flag.Duration("expiry", 0, "token lifetime; defaults to jwt.expiry")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "jwt.secret is required (TRE_JWT_SECRET)")
		os.Exit(1)
	}

	ttl := cfg.JWT.Expiry
	if *expiry > 0 {
		ttl = *expiry
	}

	token, expiresAt, err := service.NewJWTTokenService(cfg.JWT.Secret, ttl, cfg.JWT.Issuer).Generate(*subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "subject=%s issuer=%s expires=%s\n", *subject, cfg.JWT.Issuer, expiresAt.Format(time.RFC3339))
}
