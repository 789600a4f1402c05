package notify

import (
	"fmt"
	"log"
	"time"
)

// Notifier: куда отправлять уведомление (сейчас только лог)
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s", subject, message)
	return nil
}

func HumanTimeRange(startUnix, endUnix int64, loc *time.Location) string {
	st := time.Unix(startUnix, 0).In(loc)
	et := time.Unix(endUnix, 0).In(loc)
	return fmt.Sprintf("%s - %s", st.Format("2006-01-02 15:04"), et.Format("15:04"))
}
