package driver

// StoryDocumentDriver is the wire representation of a story document in
// the search engine. Field names are the index schema names.
type StoryDocumentDriver struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	URI       string `json:"uri"`
	Published string `json:"published"`
	Source    string `json:"source"`
	Summary   string `json:"summary"`
}

// DriverError represents an error from the driver layer. The cause is
// preserved so gateways can classify it.
type DriverError struct {
	Op  string
	Err error
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *DriverError) Unwrap() error {
	return e.Err
}
