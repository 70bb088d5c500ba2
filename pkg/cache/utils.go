package cache

import "fmt"

// Key builds a cache key from a kind and its identifying parameters,
// e.g. Key("series", "AAPL", "5min") -> "series:AAPL:5min".
func Key(kind string, params ...interface{}) string {
	key := kind
	for _, param := range params {
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}
