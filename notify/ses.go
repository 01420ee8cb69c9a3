package notify

import (
	"context"
	"fmt"

	"github.com/emanuelpaduret/alex-backend/models"
	"github.com/emanuelpaduret/alex-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESNotifier emails the staff inbox when an urgent lead lands
type SESNotifier struct {
	client *ses.Client
	config *models.Config
	logger logger.Logger
}

// NewSESNotifier creates the SES client for the configured region
func NewSESNotifier(ctx context.Context, cfg *models.Config, log logger.Logger) (*SESNotifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.NotifyAWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESNotifier{
		client: ses.NewFromConfig(awsCfg),
		config: cfg,
		logger: log,
	}, nil
}

// NotifyUrgent sends a plain-text alert for an urgent submission. Best-effort:
// the caller decides whether a failure matters.
func (n *SESNotifier) NotifyUrgent(ctx context.Context, sub *models.Submission) error {
	subject := fmt.Sprintf("Urgent lead: %s (%s)", sub.Name, sub.SubmissionType)
	body := fmt.Sprintf(
		"An urgent submission was received.\n\nName: %s\nEmail: %s\nPhone: %s\nType: %s\nSource: %s\nMessage:\n%s\n",
		sub.Name, sub.Email, sub.Phone, sub.SubmissionType, sub.Source, sub.Message,
	)

	input := &ses.SendEmailInput{
		Source: aws.String(n.config.NotifyFrom),
		Destination: &types.Destination{
			ToAddresses: []string{n.config.NotifyTo},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send urgent-lead email: %w", err)
	}
	n.logger.Infof("Urgent-lead notification sent for submission %s", sub.ID.Hex())
	return nil
}
