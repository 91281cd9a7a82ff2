package qabot

import "fmt"

// ConfigError represents a caller integration bug detected at construction
// time. These fail fast instead of being recovered at runtime.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Msg)
}

// StorageError represents errors reading or writing the persistent store.
type StorageError struct {
	Key string
	Op  string // "read", "write", "encode"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// RequestError represents transport or backend failures on the Q&A and
// rating endpoints.
type RequestError struct {
	Endpoint string
	Status   int // 0 when the request never completed
	Err      error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request error [%s]: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("request error [%s]: %v", e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
