package canvas

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Response is the raw result of one executed request: status, headers,
// body bytes, and the pagination links extracted from the Link header.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Links      PageLinks
}

// PageLinks holds the relation-tagged URLs from a paginated response.
// Only Next drives iteration; the rest are convenience accessors.
type PageLinks struct {
	Current string
	Next    string
	Prev    string
	First   string
	Last    string
}

// HasNext reports whether a next-page cursor is present.
func (l PageLinks) HasNext() bool {
	return l.Next != ""
}

// ParseLinkHeader extracts relation links from a Link header value of the
// form `<url>; rel="next", <url>; rel="last"`. Malformed segments are
// skipped rather than failing the whole response.
func ParseLinkHeader(header string) PageLinks {
	var links PageLinks

	for _, segment := range strings.Split(header, ",") {
		parts := strings.Split(strings.TrimSpace(segment), ";")
		if len(parts) < 2 {
			continue
		}

		target := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}

		target = strings.Trim(target, "<>")

		for _, attr := range parts[1:] {
			attr = strings.TrimSpace(attr)

			rel, found := strings.CutPrefix(attr, "rel=")
			if !found {
				continue
			}

			switch strings.Trim(rel, `"`) {
			case "current":
				links.Current = target
			case "next":
				links.Next = target
			case "prev":
				links.Prev = target
			case "first":
				links.First = target
			case "last":
				links.Last = target
			}
		}
	}

	return links
}

// Caller is the generic call surface every extension builds on. It is
// implemented by the engine in internal/client.
type Caller interface {
	// Do executes one request spec against the configured base URL.
	Do(ctx context.Context, spec *RequestSpec) (*Response, error)

	// DoURL executes a request against an absolute URL, used to follow
	// pagination cursors verbatim.
	DoURL(ctx context.Context, method, rawURL string) (*Response, error)
}

// Call executes a spec and decodes the response body into T. Non-2xx
// statuses surface as *APIError; a schema mismatch surfaces as a Decode
// classified *APIError.
func Call[T any](ctx context.Context, caller Caller, spec *RequestSpec) (*T, error) {
	resp, err := caller.Do(ctx, spec)
	if err != nil {
		return nil, err
	}

	var value T

	err = json.Unmarshal(resp.Body, &value)
	if err != nil {
		return nil, NewDecodeError(err)
	}

	return &value, nil
}

// PageDecoder turns one raw page body into a slice of items. Most Canvas
// list endpoints return a bare JSON array; a few wrap the array in an
// envelope object and need a custom decoder.
type PageDecoder[T any] func(body []byte) ([]T, error)

func arrayPageDecoder[T any](body []byte) ([]T, error) {
	var items []T

	err := json.Unmarshal(body, &items)
	if err != nil {
		return nil, NewDecodeError(err)
	}

	return items, nil
}

// PageIterator walks a paginated endpoint one page at a time, following
// the next-relation cursor until exhaustion. Iteration is lazy: no page
// beyond the one requested is fetched. Cursors are single-use forward
// links, so restarting means building a fresh iterator.
type PageIterator[T any] struct {
	caller  Caller
	spec    *RequestSpec
	decode  PageDecoder[T]
	links   PageLinks
	started bool
	done    bool
	err     error
}

// Paginate wraps a spec into a lazy page iterator whose pages decode as
// plain JSON arrays of T.
func Paginate[T any](caller Caller, spec *RequestSpec) *PageIterator[T] {
	return PaginateWith[T](caller, spec, arrayPageDecoder[T])
}

// PaginateWith is Paginate with a custom per-page decoder for endpoints
// that wrap their items in an envelope.
func PaginateWith[T any](caller Caller, spec *RequestSpec, decode PageDecoder[T]) *PageIterator[T] {
	return &PageIterator[T]{
		caller: caller,
		spec:   spec,
		decode: decode,
	}
}

// HasNext reports whether another page can be fetched. It is true before
// the first fetch and false once a page without a next cursor has been
// consumed or an error terminated the walk.
func (it *PageIterator[T]) HasNext() bool {
	return !it.done
}

// Err returns the error that terminated iteration, if any. Items yielded
// before the failure remain valid.
func (it *PageIterator[T]) Err() error {
	return it.err
}

// Links returns the pagination links of the most recently fetched page.
func (it *PageIterator[T]) Links() PageLinks {
	return it.links
}

// NextPage fetches and decodes the next page. After the last page it
// returns (nil, nil) and HasNext reports false. A per-page failure marks
// the iterator done and is returned to the caller.
func (it *PageIterator[T]) NextPage(ctx context.Context) ([]T, error) {
	if it.done {
		return nil, it.err
	}

	var (
		resp *Response
		err  error
	)

	if !it.started {
		it.started = true
		resp, err = it.caller.Do(ctx, it.spec)
	} else {
		// The cursor already encodes all query state, including page size.
		resp, err = it.caller.DoURL(ctx, http.MethodGet, it.links.Next)
	}

	if err != nil {
		it.done = true
		it.err = err

		return nil, err
	}

	it.links = resp.Links
	if !it.links.HasNext() {
		it.done = true
	}

	items, err := it.decode(resp.Body)
	if err != nil {
		it.done = true
		it.err = err

		return nil, err
	}

	return items, nil
}

// All drains the remaining pages into one slice. Prefer ForEach or
// NextPage for large result sets.
func (it *PageIterator[T]) All(ctx context.Context) ([]T, error) {
	var all []T

	for it.HasNext() {
		items, err := it.NextPage(ctx)
		if err != nil {
			return all, err
		}

		all = append(all, items...)
	}

	return all, nil
}

// ForEach applies fn to every remaining item without materializing all
// pages. A non-nil error from fn stops iteration and is returned.
func (it *PageIterator[T]) ForEach(ctx context.Context, fn func(T) error) error {
	for it.HasNext() {
		items, err := it.NextPage(ctx)
		if err != nil {
			return err
		}

		for _, item := range items {
			err = fn(item)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// PageResult is one streamed page: its items, or the error that
// terminated the walk.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages runs the iterator in a goroutine and delivers pages over a
// channel. The channel closes after the last page or the first error;
// cancelling ctx stops the walk.
func StreamPages[T any](ctx context.Context, caller Caller, spec *RequestSpec) <-chan PageResult[T] {
	return streamPages(ctx, Paginate[T](caller, spec))
}

func streamPages[T any](ctx context.Context, it *PageIterator[T]) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		for it.HasNext() {
			items, err := it.NextPage(ctx)

			result := PageResult[T]{Items: items, Err: err}

			select {
			case results <- result:
			case <-ctx.Done():
				return
			}

			if err != nil {
				return
			}
		}
	}()

	return results
}
