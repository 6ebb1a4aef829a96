package domain

// Document is a persisted record. It is serialized exactly as
// {"data": <Data>, "id": <ID>}.
type Document[T any] struct {
	Data T      `json:"data"`
	ID   string `json:"id"`
}
