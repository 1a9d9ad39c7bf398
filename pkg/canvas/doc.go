// Package canvas provides types, interfaces, and helpers for working with
// the Canvas LMS REST API.
//
// # Overview
//
// The canvas package defines the domain types (e.g., Course, User,
// AccountCalendar, Report) and the interfaces for resource-oriented clients
// (e.g., CalendarsClient, CoursesClient). A concrete implementation is
// provided by the canvasclient package, which wires configuration,
// transport, rate-limit tracking, and retries. Most consumers should import
// canvasclient to construct a client and then interact with the resource
// client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/canvaskit-io/canvas/pkg/canvasclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := canvasclient.NewBuilder("my-token").
//	    BaseURL("https://canvas.example.edu").
//	    Build()
//	  if err != nil { log.Fatal(err) }
//
//	  course, err := cli.Courses().Get(ctx, 1, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = course
//	}
//
// # Queries and pagination
//
// Use Params to express query options; it preserves insertion order and the
// repeated-key array convention the API uses (include[]=a&include[]=b).
// Paginated endpoints return a PageIterator that follows the Link header's
// next relation lazily:
//
//	it := cli.Courses().List(canvas.NewParams().WithPerPage(50))
//	for it.HasNext() {
//	  page, err := it.NextPage(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = page
//	}
//
// Beyond the typed resource clients, Call and Paginate are the generic
// surface any endpoint can be reached through:
//
//	course, err := canvas.Call[canvas.Course](ctx, cli, canvas.Get("/api/v1/courses/1"))
//
// # Errors
//
// Failed calls surface as *APIError with a classification (NotFound,
// Unauthorized, RateLimited, ...); helpers like IsNotFound work through
// errors.As. Throttling (429) and transient 5xx responses are retried
// internally with bounded attempts before surfacing.
package canvas
