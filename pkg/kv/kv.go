package kv

// Store defines the interface for a key-value store.
// Implementations of this interface can be swapped out,
// allowing for different storage backends.
//
// Values are arbitrary JSON-decoded values (string, float64, bool, nil,
// map[string]any, []any) and are stored without coercion.
type Store interface {
	// Get retrieves the value associated with the given key.
	// Returns the value and true if the key exists, or nil and false if not.
	Get(key string) (any, bool)

	// Set stores a key-value pair, inserting or overwriting.
	// Returns the previous value and true if the key already existed,
	// so callers can observe overwrites.
	Set(key string, value any) (any, bool)

	// Delete removes a key from the store.
	// Returns the removed value and true if the key existed.
	// Deleting a missing key is a no-op, not an error.
	Delete(key string) (any, bool)
}
