package report

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/triplea-rent/feedbackbot/pkg/ports/botport"
)

// Outcome describes one delivery attempt. Only the primary result is ever
// surfaced to the submitting user.
type Outcome struct {
	PrimaryOK         bool
	SecondaryFailures int
}

// Deliverer posts a rendered report to the primary group destination and,
// best effort, to each admin destination.
type Deliverer struct {
	port   botport.BotPort
	group  int64
	admins []int64
	log    logrus.FieldLogger
}

func NewDeliverer(port botport.BotPort, group int64, admins []int64, log logrus.FieldLogger) *Deliverer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Deliverer{port: port, group: group, admins: admins, log: log}
}

// Deliver sends text to the group, then to each admin. A primary failure
// short-circuits and is reported; secondary failures are counted, logged and
// otherwise swallowed. Each admin is attempted no matter how the previous
// ones fared.
func (d *Deliverer) Deliver(ctx context.Context, text string) Outcome {
	if d.group == 0 {
		d.log.Warn("no primary destination configured, dropping report")
		return Outcome{}
	}

	if _, err := d.port.SendMessage(ctx, d.group, text, nil); err != nil {
		d.log.WithField("chat_id", d.group).WithError(err).Error("failed to post feedback to group")
		return Outcome{}
	}

	outcome := Outcome{PrimaryOK: true}
	for _, admin := range d.admins {
		if _, err := d.port.SendMessage(ctx, admin, text, nil); err != nil {
			outcome.SecondaryFailures++
			d.log.WithField("chat_id", admin).WithError(err).Warn("failed to duplicate feedback to admin")
		}
	}
	return outcome
}
