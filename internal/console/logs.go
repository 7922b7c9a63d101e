package console

import (
	"github.com/NikitaCOEUR/devconsole/internal/transcript"
	"github.com/sirupsen/logrus"
)

// transcriptHook copies log warnings and errors into a session transcript
type transcriptHook struct {
	session *Session
}

func (h *transcriptHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (h *transcriptHook) Fire(entry *logrus.Entry) error {
	if h.session.ended {
		return nil
	}
	severity := transcript.Warning
	if entry.Level <= logrus.ErrorLevel {
		severity = transcript.Error
	}
	transcript.Print(h.session.transcript, severity, entry.Message)
	return nil
}
