package notify

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waTypes "go.mau.fi/whatsmeow/types"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
)

// WhatsAppSender delivers messages through a paired whatsmeow device.
// The device store shares the application's database connection so the
// whatsmeow tables live alongside the rest of the schema. Pairing (QR
// scan) is an operator task; until a device is paired and connected,
// sends fail and are logged by the dispatcher like any other transport
// error.
type WhatsAppSender struct {
	store  *sqlstore.Container
	client *whatsmeow.Client
}

// NewWhatsAppSender wraps the given sql.DB in a whatsmeow sqlstore and
// connects the first stored device, if any.
func NewWhatsAppSender(sqlDB *sql.DB, driver string) (*WhatsAppSender, error) {
	container := sqlstore.NewWithDB(sqlDB, driver, nil)
	if err := container.Upgrade(); err != nil {
		return nil, errors.Wrap(err, "whatsapp store upgrade")
	}

	device, err := container.GetFirstDevice()
	if err != nil {
		return nil, errors.Wrap(err, "whatsapp device lookup")
	}

	s := &WhatsAppSender{store: container, client: whatsmeow.NewClient(device, nil)}
	if s.client.Store.ID != nil {
		go func() {
			if err := s.client.Connect(); err != nil {
				zap.L().Warn("whatsapp: connect failed", zap.Error(err))
			}
		}()
	} else {
		zap.L().Info("whatsapp: no paired device, channel inactive until pairing")
	}
	return s, nil
}

func (s *WhatsAppSender) Channel() string {
	return "whatsapp"
}

// Send delivers a plain text message to the recipient JID
// (e.g. "5511999990000@s.whatsapp.net").
func (s *WhatsAppSender) Send(ctx context.Context, recipient, subject, body string) error {
	if s.client == nil || !s.client.IsConnected() {
		return errors.New("whatsapp client not connected")
	}
	jid, err := waTypes.ParseJID(recipient)
	if err != nil {
		return errors.Wrap(err, "invalid whatsapp jid")
	}
	text := body
	if subject != "" {
		text = subject + "\n" + body
	}
	msg := &waProto.Message{Conversation: proto.String(text)}
	if _, err := s.client.SendMessage(ctx, jid, msg); err != nil {
		return errors.Wrap(err, "whatsapp send")
	}
	return nil
}

// Disconnect closes the client connection.
func (s *WhatsAppSender) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}
