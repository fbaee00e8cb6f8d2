// Package util carries request-scope helpers shared by middleware and
// handlers.
package util

import "github.com/gin-gonic/gin"

// SetScope attaches a key/value to the request's scope map, initializing the
// map on first use.
func SetScope(c *gin.Context, key string, value interface{}) {
	scopeValue, exists := c.Get("scopes")
	if !exists {
		c.Set("scopes", map[string]interface{}{key: value})
		return
	}
	scopeValue.(map[string]interface{})[key] = value
}

// GetScopeByKeyAsString returns the scope value for key, or "" when unset.
func GetScopeByKeyAsString(c *gin.Context, key string) string {
	scopeValue, exists := c.Get("scopes")
	if !exists {
		return ""
	}
	v, ok := scopeValue.(map[string]interface{})[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
