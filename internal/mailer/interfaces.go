package mailer

// Service delivers out-of-band messages to users. The recovery code must
// never travel back in an HTTP response; this is its only channel.
type Service interface {
	SendRecoveryCode(toEmail, toName, code string) error
	SendWelcome(toEmail, toName string) error
}
