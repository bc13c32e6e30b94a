package communication

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailInfo struct {
	From    string
	To      []string
	Subject string
	Text    string
}

func newSendEmailInput(info *EmailInfo) *ses.SendEmailInput {
	return &ses.SendEmailInput{
		Source:      aws.String(info.From),
		Destination: &types.Destination{ToAddresses: info.To},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(info.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(info.Text), Charset: aws.String("UTF-8")},
			},
		},
	}
}

// SendEmail sends a plain text email through SES and returns the message id.
func SendEmail(ctx context.Context, info *EmailInfo) (string, error) {
	if info.From == "" || len(info.To) == 0 {
		return "", fmt.Errorf("email needs a sender and at least one recipient")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}
	client := ses.NewFromConfig(cfg)

	res, err := client.SendEmail(ctx, newSendEmailInput(info))
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	return aws.ToString(res.MessageId), nil
}
