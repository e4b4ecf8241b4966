package statusMessage

import (
	"context"
	"nimbusBackend/events"
	"nimbusBackend/socket"
	"nimbusBackend/utils"

	"github.com/samber/lo"
)

type (
	Service interface {
		Get(ctx context.Context, userId string, filter StatusMessageFilter) ([]StatusMessageOut, error)
	}

	statusMessageService struct {
		statusMessageRepo Repository
		namespace         socket.OutputNamespace[StatusMessageOut]
		onNotification    func(data events.NotificationEventData)
	}
)

// CreateService Creates the status message service and subscribes it to the
// notification event. Every dispatched notification is persisted for its receivers
// and pushed to connected dashboard clients.
func CreateService(
	statusMessageRepo Repository,
	notificationEvent events.Event[events.NotificationEventData],
	namespace socket.OutputNamespace[StatusMessageOut],
) Service {
	service := &statusMessageService{
		statusMessageRepo: statusMessageRepo,
		namespace:         namespace,
	}

	service.onNotification = service.handleNotification
	notificationEvent.Subscribe(&service.onNotification)

	return service
}

func (s *statusMessageService) Get(ctx context.Context, userId string, filter StatusMessageFilter) ([]StatusMessageOut, error) {
	allMessages, err := s.statusMessageRepo.GetForUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	return lo.Map(
		utils.GetItemsFromList(allMessages, filter.Limit, filter.Offset),
		func(statusMessage StatusMessage, _ int) StatusMessageOut {
			return toStatusMessageOut(statusMessage)
		},
	), nil
}

func (s *statusMessageService) handleNotification(data events.NotificationEventData) {
	ctx := context.Background()

	if len(data.Receivers) == 0 {
		statusMessage := newStatusMessage(data.Source, data.Content, data.Severity)
		statusMessage.Timestamp = data.Timestamp

		_ = s.statusMessageRepo.Create(ctx, statusMessage)
		s.namespace.Send(toStatusMessageOut(*statusMessage))
		return
	}

	for _, receiver := range data.Receivers {
		statusMessage := newStatusMessage(data.Source, data.Content, data.Severity)
		statusMessage.Timestamp = data.Timestamp
		statusMessage.Receiver = receiver

		_ = s.statusMessageRepo.Create(ctx, statusMessage)
	}

	s.namespace.SendTo(
		toStatusMessageOut(*newStatusMessage(data.Source, data.Content, data.Severity)),
		data.Receivers,
	)
}

func toStatusMessageOut(statusMessage StatusMessage) StatusMessageOut {
	return StatusMessageOut{
		ID:        statusMessage.UUID,
		Source:    statusMessage.Source,
		Content:   statusMessage.Content,
		Severity:  statusMessage.Severity,
		Timestamp: statusMessage.Timestamp,
	}
}
