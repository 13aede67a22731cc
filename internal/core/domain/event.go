package domain

import "time"

// LedgerEventType identifies the lifecycle transition an event describes.
type LedgerEventType string

const (
	EventDocumentCreated LedgerEventType = "document_created"
	EventDocumentIssued  LedgerEventType = "document_issued"
)

// LedgerEvent is the fire-and-forget notification emitted after a document
// is created or issued, carrying the code for downstream collaborators
// (code-image rendering, audio announcement). Delivery failures never affect
// ledger state.
type LedgerEvent struct {
	Type     LedgerEventType
	Code     string
	Category Category
	At       time.Time
}
