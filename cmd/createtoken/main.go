package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"axiapac.com/hrdesk/config"
	"axiapac.com/hrdesk/security"
)

// Prints a service bearer token for calling the HR payroll API by hand.
func main() {
	ctx := context.Background()
	cfg, err := config.Load(ctx, config.FromEnvironment())
	if err != nil {
		log.Fatal(err)
	}
	if cfg.API.JWTSecret == "" {
		log.Fatal("api.jwt_secret is not configured")
	}

	subject := "hrdesk-cli"
	if len(os.Args) > 1 {
		subject = os.Args[1]
	}
	tokens, err := security.NewServiceTokens(cfg.API.JWTSecret, security.ServiceIdentity{
		Subject: subject,
		Issuer:  "hrdesk",
	}, time.Hour)
	if err != nil {
		log.Fatal(err)
	}
	token, err := tokens.Token()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
