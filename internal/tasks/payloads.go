package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants shared by the queue producer and consumer.
const (
	TypeSnapshotRender = "snapshot:render"
)

// SnapshotRenderPayload carries the minimum needed to render a portfolio
// snapshot.
type SnapshotRenderPayload struct {
	PortfolioID   uint   `json:"portfolio_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewSnapshotRenderTask builds a snapshot render task for a portfolio.
func NewSnapshotRenderTask(portfolioID uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SnapshotRenderPayload{
		PortfolioID:   portfolioID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSnapshotRender, payload), nil
}
