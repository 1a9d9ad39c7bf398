package canvas

import "net/http"

// RequestSpec describes one logical API call independent of transport:
// method, relative path, ordered query parameters, and an optional JSON
// body. Specs are built per call and consumed immediately by the engine.
type RequestSpec struct {
	Method  string
	Path    string
	Query   Params
	Body    interface{}
	Headers map[string]string
}

// Get builds a GET request spec for a relative API path.
func Get(path string) *RequestSpec {
	return &RequestSpec{Method: http.MethodGet, Path: path}
}

// Post builds a POST request spec with a JSON body payload.
func Post(path string, body interface{}) *RequestSpec {
	return &RequestSpec{Method: http.MethodPost, Path: path, Body: body}
}

// Put builds a PUT request spec with a JSON body payload.
func Put(path string, body interface{}) *RequestSpec {
	return &RequestSpec{Method: http.MethodPut, Path: path, Body: body}
}

// Delete builds a DELETE request spec.
func Delete(path string) *RequestSpec {
	return &RequestSpec{Method: http.MethodDelete, Path: path}
}

// WithQuery replaces the request's query parameters and returns the request.
func (r *RequestSpec) WithQuery(params Params) *RequestSpec {
	r.Query = params

	return r
}

// WithHeader adds a per-call header merged over the client defaults.
func (r *RequestSpec) WithHeader(key, value string) *RequestSpec {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}

	r.Headers[key] = value

	return r
}
