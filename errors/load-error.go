package errors

import "fmt"

// LoadError is the failure value stored at a leaf position of a result
// tree. Every transport-level failure collapses to the same message
// shape: "loading of <url> failed".
type LoadError struct {
	Message     string
	Url         string
	Description error
	Type        string
}

func NewLoadError(url string, description error) *LoadError {
	return &LoadError{
		Message:     fmt.Sprintf("loading of %s failed", url),
		Url:         url,
		Description: description,
		Type:        "LoadError",
	}
}

func (e *LoadError) Err() error {
	return e
}

func (e *LoadError) Error() string {
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Description
}

// BatchError is the settlement error of a multi-request load. Result
// holds the full result tree: successful leaves keep their position,
// failed leaves hold their *LoadError.
type BatchError struct {
	Message string
	Result  any
	Type    string
}

func NewBatchError(result any) *BatchError {
	return &BatchError{
		Message: "loading of one or more resources failed",
		Result:  result,
		Type:    "BatchError",
	}
}

func (e *BatchError) Err() error {
	return e
}

func (e *BatchError) Error() string {
	return e.Message
}
