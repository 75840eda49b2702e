// Package notifications fans restock events out to subscribers over the
// configured delivery channels.
package notifications

import (
	"context"
	"fmt"

	"github.com/restockwatch/restockwatch/internal/domain"
	"github.com/restockwatch/restockwatch/internal/pkg/ctxlog"
)

// Notification is a single message to a single recipient.
type Notification struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers notifications over one channel type.
type Sender interface {
	Type() domain.ChannelType
	Send(ctx context.Context, notification Notification) error
}

// SubscriberSource lists the active subscribers of a product.
type SubscriberSource interface {
	ActiveSubscriptionsForProduct(ctx context.Context, productID string) ([]domain.Subscription, error)
}

// Notifier sends restock notifications to a product's subscribers.
type Notifier struct {
	source  SubscriberSource
	senders map[domain.ChannelType]Sender
}

// NewNotifier creates a new Notifier with the given senders.
func NewNotifier(source SubscriberSource, senders ...Sender) *Notifier {
	byType := make(map[domain.ChannelType]Sender, len(senders))
	for _, s := range senders {
		byType[s.Type()] = s
	}
	return &Notifier{
		source:  source,
		senders: byType,
	}
}

// ProductRestocked notifies every active subscriber of the product. Each
// subscriber gets an email; subscribers with a telegram username get a
// telegram message too. Individual send failures are logged and counted,
// never abort the fan-out.
func (n *Notifier) ProductRestocked(ctx context.Context, product *domain.Product) error {
	subs, err := n.source.ActiveSubscriptionsForProduct(ctx, product.ProductID)
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	if len(subs) == 0 {
		ctxlog.FromContext(ctx).Debug("no subscribers for restocked product",
			"product_id", product.ProductID,
		)
		return nil
	}

	subject, body := buildRestockMessage(product)

	for _, sub := range subs {
		n.send(ctx, domain.ChannelTypeEmail, Notification{
			To:      sub.Email,
			Subject: subject,
			Body:    body,
		})

		if sub.TelegramUsername != "" {
			n.send(ctx, domain.ChannelTypeTelegram, Notification{
				To:      "@" + sub.TelegramUsername,
				Subject: subject,
				Body:    body,
			})
		}
	}

	ctxlog.FromContext(ctx).Info("restock notifications dispatched",
		"product_id", product.ProductID,
		"subscribers", len(subs),
	)
	return nil
}

func (n *Notifier) send(ctx context.Context, channelType domain.ChannelType, notification Notification) {
	sender, ok := n.senders[channelType]
	if !ok {
		return
	}

	if err := sender.Send(ctx, notification); err != nil {
		recordSendError(channelType)
		ctxlog.FromContext(ctx).Error("failed to send notification",
			"channel_type", channelType,
			"error", err,
		)
		return
	}

	recordSent(channelType)
}

func buildRestockMessage(product *domain.Product) (subject, body string) {
	subject = fmt.Sprintf("Back in stock: %s", product.Name)
	body = fmt.Sprintf("%s is available again.", product.Name)
	if product.URL != "" {
		body += fmt.Sprintf("\n\n%s", product.URL)
	}
	return subject, body
}
