package interfaces

// SlotInterface is a durable string key-value store. Get reports false for an
// absent key; that is not an error.
type SlotInterface interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}
