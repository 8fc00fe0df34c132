// Copyright (c) 2026 YaMDb. All rights reserved.

// Package mail delivers confirmation-code emails through an SMTP gateway.
//
// # Architecture
//
// The Sender interface is what the auth service depends on; the SMTP
// implementation lives here so the domain layer never touches wire-level
// mail concerns. Tests inject a fake Sender.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers a confirmation code to a recipient address.
type Sender interface {
	SendConfirmationCode(ctx context.Context, to, username, code string) error
}

// SMTPConfig carries the gateway settings injected from the config layer.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends confirmation-code emails via an authenticated SMTP server.
type SMTPSender struct {
	client *gomail.Client
	from   string
}

// NewSMTPSender builds an SMTP-backed Sender.
//
// The connection is established lazily on first send, so construction never
// blocks startup on an unreachable mail host.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	options := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}

	if cfg.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("mail: failed to create SMTP client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From}, nil
}

// SendConfirmationCode emails the code used by the token endpoint.
func (sender *SMTPSender) SendConfirmationCode(ctx context.Context, to, username, code string) error {
	message := gomail.NewMsg()

	if err := message.From(sender.from); err != nil {
		return fmt.Errorf("mail: invalid sender address: %w", err)
	}
	if err := message.To(to); err != nil {
		return fmt.Errorf("mail: invalid recipient address: %w", err)
	}

	message.Subject("YaMDb confirmation code")
	message.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Hello %s,\n\nYour confirmation code is: %s\n\nUse it together with your username to obtain an access token.\n",
		username, code,
	))

	if err := sender.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("mail: failed to send confirmation code: %w", err)
	}

	return nil
}
