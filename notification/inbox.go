package notification

import (
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"github.com/healthtrack-app/healthtrack-api/utils"
)

// Kind of a user facing failure
type Kind string

const (
	PermissionDenied         Kind = "permission_denied"
	LocationPermissionDenied Kind = "location_permission_denied"
	SensorUnavailable        Kind = "sensor_unavailable"
	StorageFailure           Kind = "storage_failure"
	MalformedData            Kind = "malformed_data"
)

const defaultInboxSize = 20

var log = logrus.WithField("prefix", "notification")

// Notification is a localized, non-fatal message for a user.
type Notification struct {
	Kind      Kind   `json:"kind"`
	Heading   string `json:"heading"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type entry struct {
	kind      Kind
	createdAt int64
}

// Inbox queues notifications per user until the client collects them.
// Only the latest entries of a user are kept.
type Inbox struct {
	sync.Mutex
	size    int
	pending map[string][]entry
}

func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = defaultInboxSize
	}
	return &Inbox{
		size:    size,
		pending: map[string][]entry{},
	}
}

// Notify queues a notification. Storage failures are also reported to sentry.
func (i *Inbox) Notify(userID string, kind Kind, err error) {
	if kind == StorageFailure && err != nil {
		sentry.CaptureException(err)
	}

	i.Lock()
	defer i.Unlock()

	entries := append(i.pending[userID], entry{kind: kind, createdAt: time.Now().Unix()})
	if len(entries) > i.size {
		entries = entries[len(entries)-i.size:]
	}
	i.pending[userID] = entries
}

// Drain returns the queued notifications of a user rendered in lang and
// empties the queue. The queue is kept when any entry fails to render.
func (i *Inbox) Drain(userID, lang string) ([]Notification, error) {
	i.Lock()
	defer i.Unlock()

	entries := i.pending[userID]
	loc := utils.NewLocalizer(lang)
	notifications := make([]Notification, 0, len(entries))
	for _, e := range entries {
		n, err := render(loc, e)
		if err != nil {
			log.WithError(err).WithField("kind", e.kind).Error("localize notification")
			return nil, err
		}
		notifications = append(notifications, n)
	}

	delete(i.pending, userID)
	return notifications, nil
}

func render(loc *i18n.Localizer, e entry) (Notification, error) {
	heading, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID: fmt.Sprintf("notification.%s.heading", e.kind),
	})
	if err != nil {
		return Notification{}, err
	}

	content, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID: fmt.Sprintf("notification.%s.content", e.kind),
	})
	if err != nil {
		return Notification{}, err
	}

	return Notification{
		Kind:      e.kind,
		Heading:   heading,
		Content:   content,
		CreatedAt: e.createdAt,
	}, nil
}
