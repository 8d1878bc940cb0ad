// Package mail sends transactional email through Mailgun.
package mail

import (
	"context"
	"log"
	"time"

	"github.com/mailgun/mailgun-go/v3"
)

const (
	sender          = "Team Wrabit <hello@writewithwrabit.com>"
	welcomeSubject  = "Welcome to your writing journey!"
	welcomeTemplate = "app-template"
	sendTimeout     = 10 * time.Second
)

const welcomeContent = `Hey there! 👋<br><br>

  We hope you're ready to build a daily journaling habit. It might not be easy but it's definitely rewarding!
  We have a few tips to help you get started.<br><br>

  1. <b>Don't think too much.</b> Let whatever needs to come out, come out.<br>
  2. <b>Don't feel too bad if you miss a day.</b> Your streak starts again the moment you write.<br>
  3. <b>Have fun! 🎉</b> Building a habit is hard so we want it to be as enjoyable as possible.<br><br>

  If there is anything we can do to support you, feel free to reach out. You can respond directly to this email!<br><br>

  Be well,<br>
  Team Wrabit 🐇
  `

type Mailer interface {
	SendWelcome(ctx context.Context, recipient string) error
}

// Mailgun sends templated mail through a Mailgun domain.
type Mailgun struct {
	mg mailgun.Mailgun
}

func NewMailgun(domain, apiKey string) *Mailgun {
	return &Mailgun{mg: mailgun.NewMailgun(domain, apiKey)}
}

// SetAPIBase points the client at another API root, e.g. the EU region.
func (m *Mailgun) SetAPIBase(url string) {
	m.mg.SetAPIBase(url)
}

func (m *Mailgun) SendWelcome(ctx context.Context, recipient string) error {
	message := m.mg.NewMessage(sender, welcomeSubject, "", recipient)
	message.SetTemplate(welcomeTemplate)
	if err := message.AddTemplateVariable("content", welcomeContent); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, id, err := m.mg.Send(ctx, message)
	if err != nil {
		return err
	}

	log.Printf("sent welcome mail %s to %s", id, recipient)
	return nil
}

// Discard logs instead of sending; used when no Mailgun key is configured.
type Discard struct{}

func (Discard) SendWelcome(ctx context.Context, recipient string) error {
	log.Printf("mail disabled, not sending welcome mail to %s", recipient)
	return nil
}
