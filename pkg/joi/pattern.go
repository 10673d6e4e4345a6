package joi

import (
	"errors"
	"regexp"

	"github.com/dmitrymomot/joi/pkg/joi/internal/patterncache"
)

// patternCacheSize bounds the number of distinct compiled patterns kept alive.
const patternCacheSize = 256

var patterns = patterncache.New(patternCacheSize)

// ipv4 accepts exactly four dot-separated octets in 0-255 without leading zeros.
var ipv4 = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9][0-9]|[0-9])\.){3}(?:25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9][0-9]|[0-9])$`)

// compilePattern compiles expr anchored on both ends so that matching is a
// whole-value match rather than a search.
func compilePattern(expr string) (*regexp.Regexp, error) {
	re, err := patterns.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, errors.Join(ErrInvalidPattern, err)
	}
	return re, nil
}

func matchPattern(expr, value string) (bool, error) {
	re, err := compilePattern(expr)
	if err != nil {
		return false, err
	}
	return re.MatchString(value), nil
}

func isIPv4(value string) bool {
	return ipv4.MatchString(value)
}
