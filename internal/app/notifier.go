package app

import (
	"context"
	"fmt"

	"github.com/Saikirangolkonda/TutorMatch/internal/config"
	"github.com/Saikirangolkonda/TutorMatch/internal/notification"
)

func (a *App) newSender(ctx context.Context) (notification.Sender, error) {
	switch a.cfg.Notifier.Driver {
	case config.NotifierLog:
		return notification.NewLogSender(a.log), nil

	case config.NotifierTelegram:
		return notification.NewTelegramSender(a.cfg.Telegram.BotToken, a.log)

	case config.NotifierSNS:
		if a.cfg.SNS.TopicARN == "" {
			return nil, fmt.Errorf("sns.topic_arn is required for the sns notifier")
		}
		client, err := notification.NewSNSClient(ctx, a.cfg.SNS.Region, a.cfg.SNS.Endpoint)
		if err != nil {
			return nil, err
		}
		return notification.NewSNSSender(client, a.cfg.SNS.TopicARN), nil

	case config.NotifierAMQP:
		s, err := notification.NewAMQPSender(a.cfg.AMQP.URL, a.cfg.AMQP.Exchange, a.cfg.AMQP.RoutingKey)
		if err != nil {
			return nil, err
		}
		a.addCloser("amqp", s)
		return s, nil

	default:
		return nil, fmt.Errorf("unknown notifier driver %q", a.cfg.Notifier.Driver)
	}
}
