package observability

import (
	"github.com/sirupsen/logrus"
)

// Reporter is the diagnostics facility used by startup code. Log emits a
// progress notice; Print emits a summary, or a fatal notice after which the
// caller is expected to terminate.
type Reporter struct {
	log *logrus.Logger
}

// NewReporter creates a reporter writing through log
func NewReporter(log *logrus.Logger) *Reporter {
	if log == nil {
		log = logrus.New()
	}
	return &Reporter{log: log}
}

// Log reports a non-fatal progress notice
func (r *Reporter) Log(message, tag string) {
	r.log.WithField("tag", tag).Info(message)
}

// Print reports a summary or, when fatal is set, a fatal notice with its cause
func (r *Reporter) Print(message, tag string, fatal bool, detail error) {
	entry := r.log.WithField("tag", tag)
	if detail != nil {
		entry = entry.WithError(detail)
	}

	if fatal {
		entry.WithField("fatal", true).Error(message)
		return
	}
	entry.Info(message)
}
