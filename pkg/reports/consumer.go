package reports

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
)

const IndexName = "controlroom-kpis"

type Indexer func(indexName string, document io.ReadSeeker)

// BatchConsumer indexes queued KPI snapshots for the historical reports
type BatchConsumer struct {
	index Indexer
}

func NewBatchConsumer(index Indexer) *BatchConsumer {
	return &BatchConsumer{index: index}
}

func (c *BatchConsumer) Consume(batch rmq.Deliveries) {
	for _, delivery := range batch {
		payload := delivery.Payload()

		var snapshot KPISnapshot
		if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
			log.Error().Err(err).Msg("Failed to decode KPI snapshot")

			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject KPI snapshot")
			}
			continue
		}

		c.index(IndexName, strings.NewReader(payload))

		if err := delivery.Ack(); err != nil {
			log.Error().Err(err).Msg("Failed to ack KPI snapshot")
		}
	}
}
