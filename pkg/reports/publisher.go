package reports

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
)

const QueueName = "kpi-snapshots"

type SnapshotPublisher interface {
	Publish(snapshot KPISnapshot) error
}

// QueuePublisher pushes KPI snapshots onto the rmq queue for indexing
type QueuePublisher struct {
	queue rmq.Queue
}

func NewQueuePublisher(connection rmq.Connection) (*QueuePublisher, error) {
	queue, err := connection.OpenQueue(QueueName)
	if err != nil {
		return nil, err
	}

	return &QueuePublisher{queue: queue}, nil
}

func (p *QueuePublisher) Publish(snapshot KPISnapshot) error {
	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return p.queue.PublishBytes(snapshotBytes)
}
