package mailer

import (
	"fmt"

	"github.com/tigersos/tigersos-api/pkg/logger"
)

type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendRecoveryCode(toEmail, toName, code string) error {
	logger.Info("📧 [DEV MAIL] Password Recovery Email",
		"to", toEmail,
		"name", toName,
		"code", code,
	)

	fmt.Printf("\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"📧 PASSWORD RECOVERY EMAIL (DEV MODE)\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"To: %s (%s)\n"+
		"Subject: TigerSOS password recovery\n"+
		"\n"+
		"Recovery Code: %s\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n",
		toEmail, toName, code)

	return nil
}

func (d *DevMailer) SendWelcome(toEmail, toName string) error {
	logger.Info("📧 [DEV MAIL] Welcome Email",
		"to", toEmail,
		"name", toName,
	)
	return nil
}
