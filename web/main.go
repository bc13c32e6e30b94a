package main

import (
	"context"
	"log"
	"time"

	"axiapac.com/hrdesk/config"
	"axiapac.com/hrdesk/desk"
	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/infrastructure/communication"
	"axiapac.com/hrdesk/infrastructure/filesystem"
	"axiapac.com/hrdesk/security"
	"axiapac.com/hrdesk/web/handlers"
	"axiapac.com/hrdesk/web/middlewares"
	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx, config.FromEnvironment())
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	loc, err := cfg.DeskLocale()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client := v1.NewHrPayrollClient(cfg.API.BaseURL, cfg.API.Token)
	if cfg.API.JWTSecret != "" {
		tokens, err := security.NewServiceTokens(cfg.API.JWTSecret, security.ServiceIdentity{
			Subject: "hrdesk",
			Issuer:  "hrdesk",
		}, time.Hour)
		if err != nil {
			log.Fatalf("service token: %v", err)
		}
		client.Transport.Tokens = tokens
	}
	d := desk.New(desk.ServicesFrom(client), desk.Options{Locale: loc})
	d.Start(ctx)

	opts := handlers.Options{Locale: loc}
	if cfg.Export.Bucket != "" {
		archive, err := filesystem.NewS3Archive(ctx, cfg.Export.Bucket, cfg.Export.Prefix)
		if err != nil {
			log.Fatalf("export archive: %v", err)
		}
		opts.Archive = archive
	}
	if slack := communication.ConnectSlack(cfg.Notify.SlackToken, communication.SlackOption{
		InfoChannelID:  cfg.Notify.InfoChannel,
		ErrorChannelID: cfg.Notify.ErrorChannel,
	}); slack != nil {
		opts.Notifier = slack
	}

	r := gin.Default()
	r.Use(middlewares.RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handlers.Register(r.Group("/"), d, opts)

	log.Printf("hrdesk listening on %s, backend %s", cfg.Listen, cfg.API.BaseURL)
	if err := r.Run(cfg.Listen); err != nil {
		log.Fatalf("server: %v", err)
	}
}
