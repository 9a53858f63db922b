package mailer

import (
	"fmt"

	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/internal/database"
	"github.com/jrkwrit53-netizen/jansunwayi-portal-ayodhya/pkg/logger"
)

// Notifier dispatches case mail. Whether NotifyNewCase blocks the caller is
// a single configuration choice (await), not a per-call decision.
type Notifier struct {
	mailer *Mailer
	logger *logger.Logger
	await  bool
}

func NewNotifier(m *Mailer, log *logger.Logger, await bool) *Notifier {
	return &Notifier{mailer: m, logger: log, await: await}
}

// NotifyNewCase sends a review notice to every recipient. A failed send is
// logged and does not stop the remaining recipients. In detached mode the
// call returns before any send is attempted.
func (n *Notifier) NotifyNewCase(c *database.Case, recipients []string) {
	if len(recipients) == 0 {
		return
	}

	if n.await {
		n.sendAll(c, recipients)
		return
	}

	go n.sendAll(c, recipients)
}

func (n *Notifier) sendAll(c *database.Case, recipients []string) {
	subject := fmt.Sprintf("New Case Notification - Case ID: %s", c.ID)
	plain := fmt.Sprintf(`Dear User,

A new case has been registered in your department with the following details:

Notice Number: %s
Case ID: %s

This is an automated notification. Please do not reply to this email.

Regards,
District Magistrate Office, Ayodhya`, c.NoticeNumber, c.ID)

	for _, to := range recipients {
		if _, err := n.mailer.Send(to, subject, "", plain); err != nil {
			n.logger.Error("Failed to send new case notification",
				"case_id", c.ID,
				"recipient", to,
				"error", err,
			)
			continue
		}
		n.logger.Info("New case notification sent", "case_id", c.ID, "recipient", to)
	}
}

// SendReminder delivers a hearing reminder for a case
func (n *Notifier) SendReminder(c *database.Case, email string) error {
	subject := fmt.Sprintf("Hearing Reminder - Case %s", c.CaseNumber)
	plain := fmt.Sprintf(`Dear User,

This is a reminder for case %s (%s vs %s).`, c.CaseNumber, c.PetitionerName, c.RespondentName)
	if c.HearingDate != nil {
		plain += fmt.Sprintf("\n\nThe next hearing is scheduled on %s.", c.HearingDate.Format("02-01-2006"))
	}
	plain += `

Please ensure the case file is prepared.

Regards,
District Magistrate Office, Ayodhya`

	_, err := n.mailer.Send(email, subject, "", plain)
	return err
}
