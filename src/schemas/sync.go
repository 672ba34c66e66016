package schemas

import "famwealth/src/models"

// SyncRequest carries vendor records fetched elsewhere (a browser session or
// a file) straight into the reconciliation engine.
type SyncRequest struct {
	Broker     string                   `json:"broker"`
	MemberID   string                   `json:"member_id"`
	AssetClass string                   `json:"asset_class"`
	AsOf       *Date                    `json:"as_of,omitempty"`
	Holdings   []map[string]interface{} `json:"holdings"`
}

type DroppedRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type SyncResult struct {
	Scope         models.SyncScope `json:"scope"`
	InsertedCount int              `json:"inserted_count"`
	DeletedCount  int64            `json:"deleted_count"`
	Dropped       []DroppedRecord  `json:"dropped,omitempty"`
	ImportDate    Date             `json:"import_date"`
}

// BrokerSyncRequest narrows an orchestrated sync. Empty fields mean all.
type BrokerSyncRequest struct {
	MemberID   string `json:"member_id,omitempty"`
	AssetClass string `json:"asset_class,omitempty"`
}

type TupleError struct {
	Scope   models.SyncScope `json:"scope"`
	Stage   string           `json:"stage,omitempty"`
	Message string           `json:"message"`
}

type BrokerSyncResponse struct {
	Broker  string       `json:"broker"`
	Fetched int          `json:"fetched"`
	Results []SyncResult `json:"results"`
	Errors  []TupleError `json:"errors,omitempty"`
}
