package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"
)

// SendWelcomeEmail envoie l'e-mail de bienvenue après inscription.
// Best-effort : l'inscription réussit même si le SMTP est en panne.
func SendWelcomeEmail(to, name string) error {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@vitrine.app"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Bienvenue sur Vitrine 🛍️")
	msg.SetBodyString(mail.TypeTextHTML, welcomeHTML(name))

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return fmt.Errorf("SMTP_HOST non configuré")
	}

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de bienvenue à", to)
	return client.DialAndSend(msg)
}

func welcomeHTML(name string) string {
	if name == "" {
		name = "et bienvenue"
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Bienvenue</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Bonjour %s 👋</h2>
		<p>Votre compte est prêt. Bonnes emplettes !</p>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Vitrine</strong>
		</p>
	</div>
</body>
</html>`, name)
}
