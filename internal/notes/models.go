package notes

// Note is the stored entity. ID is assigned by the Store and is opaque to callers.
type Note struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

// Input is a candidate note as decoded from a request body.
// Nil fields were absent from the body.
type Input struct {
	Content   *string `json:"content"`
	Important *bool   `json:"important"`
}

// Draft is a validated Input: both fields are settled and ready to persist.
type Draft struct {
	Content   string
	Important bool
}
