package notify

import (
	"context"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
)

// SmsSender posts messages to an SMS HTTP gateway.
type SmsSender struct {
	gateway string
	token   string
}

func NewSmsSender(gateway, token string) *SmsSender {
	return &SmsSender{gateway: gateway, token: token}
}

func (s *SmsSender) Channel() string {
	return "sms"
}

func (s *SmsSender) Send(ctx context.Context, recipient, subject, body string) error {
	if s.gateway == "" {
		return errors.New("sms gateway not configured")
	}
	var code int
	err := gout.POST(s.gateway).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + s.token}).
		SetJSON(gout.H{
			"to":      recipient,
			"message": body,
		}).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(err, "sms gateway")
	}
	if code >= 300 {
		return errors.Errorf("sms gateway status %d", code)
	}
	return nil
}

// PushSender posts messages to a push-notification HTTP gateway.
type PushSender struct {
	gateway string
	token   string
}

func NewPushSender(gateway, token string) *PushSender {
	return &PushSender{gateway: gateway, token: token}
}

func (s *PushSender) Channel() string {
	return "push"
}

func (s *PushSender) Send(ctx context.Context, recipient, subject, body string) error {
	if s.gateway == "" {
		return errors.New("push gateway not configured")
	}
	var code int
	err := gout.POST(s.gateway).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + s.token}).
		SetJSON(gout.H{
			"device":  recipient,
			"title":   subject,
			"message": body,
		}).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(err, "push gateway")
	}
	if code >= 300 {
		return errors.Errorf("push gateway status %d", code)
	}
	return nil
}
