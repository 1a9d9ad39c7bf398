package canvas

import (
	"net/url"
	"strconv"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Canvas represents array
// parameters as repeated keys (include[]=a&include[]=b), so unlike
// url.Values the encoding preserves both insertion order and repetition.
type Params []Param

// NewParams creates an empty parameter list.
func NewParams() Params {
	return Params{}
}

// Add appends a key/value pair and returns the extended list, so calls
// can be chained builder-style.
func (p Params) Add(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

// AddInt appends an integer-valued parameter.
func (p Params) AddInt(key string, value int) Params {
	return p.Add(key, strconv.Itoa(value))
}

// AddInt64 appends a 64-bit integer-valued parameter.
func (p Params) AddInt64(key string, value int64) Params {
	return p.Add(key, strconv.FormatInt(value, 10))
}

// AddBool appends a boolean-valued parameter.
func (p Params) AddBool(key string, value bool) Params {
	return p.Add(key, strconv.FormatBool(value))
}

// WithPerPage sets the page-size hint for the first request of a
// paginated walk. Subsequent pages use whatever size the cursor encodes.
func (p Params) WithPerPage(n int) Params {
	return p.AddInt("per_page", n)
}

// Get returns the first value for key, or "".
func (p Params) Get(key string) string {
	for _, param := range p {
		if param.Key == key {
			return param.Value
		}
	}

	return ""
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	for _, param := range p {
		if param.Key == key {
			return true
		}
	}

	return false
}

// Encode serializes the parameters as a query string, percent-encoding
// keys and values and preserving insertion order.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}

	var builder strings.Builder

	for i, param := range p {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(param.Key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(param.Value))
	}

	return builder.String()
}
