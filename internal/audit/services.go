package audit

import (
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/vote/internal/core"
	"github.com/zhulik/vote/internal/store/nats"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(injector *do.Injector) (*AMQPPublisher, error) {
		config, err := do.Invoke[core.Config](injector)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[logrus.FieldLogger](injector)
		if err != nil {
			return nil, err
		}

		return NewAMQPPublisher(config.AuditAMQPURL(), config.AuditAMQPQueue(), logger)
	})

	do.Provide(injector, func(injector *do.Injector) (core.AuditObserver, error) {
		config, err := do.Invoke[core.Config](injector)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[logrus.FieldLogger](injector)
		if err != nil {
			return nil, err
		}

		observers := Observers{NewLogObserver(logger)}

		if config.AuditAMQPURL() != "" {
			publisher, err := do.Invoke[*AMQPPublisher](injector)
			if err != nil {
				return nil, err
			}

			observers = append(observers, publisher)
		}

		if config.AuditNatsSubject() != "" {
			client, err := do.Invoke[*nats.Client](injector)
			if err != nil {
				return nil, err
			}

			observers = append(observers, NewNatsPublisher(client.Nats, config.AuditNatsSubject()))
		}

		return observers, nil
	})
}
