package models

// InsertResult reports a stored document.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// DeleteResult reports removed documents.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// UpdateResult reports matched and changed documents.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// CommitResult is the outcome of recording a payment and clearing the paid
// cart lines. DeleteError is set when the payment was stored but the cart
// cleanup failed.
type CommitResult struct {
	InsertResult InsertResult  `json:"insertResult"`
	DeleteResult *DeleteResult `json:"deleteResult,omitempty"`
	DeleteError  string        `json:"deleteError,omitempty"`
}
