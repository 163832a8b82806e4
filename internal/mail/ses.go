package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
)

// SESSender sends notification email through AWS SES.
type SESSender struct {
	client *ses.Client
	from   string
	logger *zap.Logger
}

// NewSESSender builds an SES-backed sender for the given region.
func NewSESSender(ctx context.Context, region, from string, logger *zap.Logger) (*SESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESSender{
		client: ses.NewFromConfig(cfg),
		from:   from,
		logger: logger,
	}, nil
}

// SendTicketUpdate emails the requester about a ticket change.
func (s *SESSender) SendTicketUpdate(ctx context.Context, to, ticketID string, status domain.TicketStatus, updatedBy string) error {
	subject := fmt.Sprintf("Ticket Update: %s", ticketID)
	htmlBody := fmt.Sprintf(`<p>Dear User,</p>
<p>Your ticket with ID <b>%s</b> has been updated.</p>
<p><b>Status:</b> %s</p>
<p><b>Updated By:</b> %s</p>
<p>For more details, please log in to your account.</p>
<p>Best Regards,</p>
<p>Your Support Team</p>`, ticketID, status, updatedBy)
	textBody := fmt.Sprintf("Your ticket %s has been updated.\nStatus: %s\nUpdated by: %s\n", ticketID, status, updatedBy)

	input := &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
				Text: &types.Content{Data: aws.String(textBody)},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send ticket update mail: %w", err)
	}

	s.logger.Info("ticket update mail sent",
		zap.String("to", to),
		zap.String("ticket_id", ticketID),
		zap.Stringp("message_id", result.MessageId))
	return nil
}
