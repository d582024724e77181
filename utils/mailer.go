package utils

import (
	"fmt"

	"github.com/Mohanraj-TZ/vci-ui-sub000/config"

	"gopkg.in/gomail.v2"
)

// SendUrgentServiceAlert mails the service desk when a challan carries an
// urgent item. A missing SMTP config disables alerts instead of failing
// the challan.
func SendUrgentServiceAlert(challanNo string, serials []string) error {
	if config.SMTPHost == "" || config.AlertEmail == "" {
		return nil
	}

	body := fmt.Sprintf("Challan %s contains urgent service items:\n", challanNo)
	for _, no := range serials {
		body += fmt.Sprintf("  - %s\n", no)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.SMTPSender)
	m.SetHeader("To", config.AlertEmail)
	m.SetHeader("Subject", fmt.Sprintf("[URGENT] Service challan %s", challanNo))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	return d.DialAndSend(m)
}
