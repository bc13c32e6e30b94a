package main

import (
	"context"
	"fmt"
	"time"

	"axiapac.com/hrdesk/config"
	v1 "axiapac.com/hrdesk/hrpayroll/v1"
	"axiapac.com/hrdesk/infrastructure/communication"
	"axiapac.com/hrdesk/lambdas/payrollrun/helper"
	"axiapac.com/hrdesk/security"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// HandleRequest runs on an EventBridge schedule. The event detail may carry
// {"month":"YYYY-MM"}; otherwise the previous month is generated.
func HandleRequest(ctx context.Context, event events.CloudWatchEvent) error {
	fmt.Printf("[EVENT] %s %s\n", event.ID, event.DetailType)

	cfg, err := config.Load(ctx, config.FromEnvironment())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	loc, err := cfg.DeskLocale()
	if err != nil {
		return err
	}

	client := v1.NewHrPayrollClient(cfg.API.BaseURL, cfg.API.Token)
	if cfg.API.JWTSecret != "" {
		tokens, err := security.NewServiceTokens(cfg.API.JWTSecret, security.ServiceIdentity{
			Subject: "hrdesk-payroll-run",
			Issuer:  "hrdesk",
		}, time.Hour)
		if err != nil {
			return err
		}
		client.Transport.Tokens = tokens
	}

	slack := communication.ConnectSlack(cfg.Notify.SlackToken, communication.SlackOption{
		InfoChannelID:  cfg.Notify.InfoChannel,
		ErrorChannelID: cfg.Notify.ErrorChannel,
	})

	period, err := helper.ResolvePeriod(event.Detail, time.Now(), loc.Location)
	if err != nil {
		return err
	}

	summary, err := helper.Run(ctx, client.Employees, client.Payroll, period)
	if err != nil {
		if slack != nil {
			if notifyErr := helper.Notify(slack, period, nil, err); notifyErr != nil {
				fmt.Printf("[ERROR] %v\n", notifyErr)
			}
		}
		return err
	}
	fmt.Printf("[INFO] %s\n", summary.Subject())

	if slack != nil {
		if err := helper.Notify(slack, period, summary, nil); err != nil {
			fmt.Printf("[ERROR] %v\n", err)
		}
	}

	if to := cfg.Notify.Recipients(); cfg.Notify.EmailFrom != "" && len(to) > 0 {
		id, err := communication.SendEmail(ctx, &communication.EmailInfo{
			From:    cfg.Notify.EmailFrom,
			To:      to,
			Subject: summary.Subject(),
			Text:    summary.Text(),
		})
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
		} else {
			fmt.Printf("[INFO] summary email %s\n", id)
		}
	}
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
