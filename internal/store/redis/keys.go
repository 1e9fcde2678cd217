package redis

const (
	// KeyPrefixTheme is the prefix for per-client theme keys
	KeyPrefixTheme = "apihub:prefs:theme:"
	// KeyAllClients is the key for the set of client IDs with stored preferences
	KeyAllClients = "apihub:prefs:clients"
)

// ThemeKey returns the Redis key for a client's theme
func ThemeKey(clientID string) string {
	return KeyPrefixTheme + clientID
}

// AllClientsKey returns the key for the set of client IDs
func AllClientsKey() string {
	return KeyAllClients
}
