package redis

import "fmt"

// Key prefix for all session data
const keyPrefix = "userportal:session"

// sessionKey returns the Redis key for a session entry
func sessionKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, namespace, key)
}

// namespacePattern matches every session key in a namespace
func namespacePattern(namespace string) string {
	return fmt.Sprintf("%s:%s:*", keyPrefix, namespace)
}
