package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioWhatsApp sends messages over the Twilio WhatsApp channel.
type TwilioWhatsApp struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioWhatsApp builds a sender authenticated with the account SID
// and auth token. from is the sending WhatsApp number; the "whatsapp:"
// prefix is added when missing.
func NewTwilioWhatsApp(accountSID, authToken, from string) (*TwilioWhatsApp, error) {
	if accountSID == "" || authToken == "" {
		return nil, errors.New("twilio credentials are not configured")
	}
	if from == "" {
		return nil, errors.New("twilio sender number is not configured")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioWhatsApp{client: client, from: ensureWhatsAppPrefix(from)}, nil
}

// Send submits one message and returns the Twilio message SID.
func (t *TwilioWhatsApp) Send(ctx context.Context, to, body string) (string, error) {
	if to == "" {
		return "", errors.New("recipient number is empty")
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(ensureWhatsAppPrefix(to))
	params.SetBody(body)

	msg, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if msg.Sid == nil {
		return "", errors.New("twilio returned no message sid")
	}
	return *msg.Sid, nil
}

func ensureWhatsAppPrefix(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
