package domain

import "time"

// LogAction enumerates the auditable contract events.
type LogAction string

const (
	LogCreated      LogAction = "CREATED"
	LogPaid         LogAction = "PAID"
	LogPartialPaid  LogAction = "PARTIAL_PAID"
	LogRenegotiated LogAction = "RENEGOTIATED"
	LogCancelled    LogAction = "CANCELLED"
	LogReopened     LogAction = "REOPENED"
)

// ContractLog is a write-once audit trail entry. Logs are never mutated or
// deleted.
type ContractLog struct {
	LogID      string    `json:"logID"`
	ContractID string    `json:"contractID"`
	Action     LogAction `json:"action"`
	ActorID    string    `json:"actorID"`
	Reason     string    `json:"reason"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}
