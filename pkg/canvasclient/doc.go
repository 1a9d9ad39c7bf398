// Package canvasclient provides the primary entry point for constructing
// a Canvas LMS API client that implements the canvas.Client interface.
//
// It layers configuration, HTTP transport, bearer authentication, rate
// budget tracking, and Link-header pagination on top of the resource
// interfaces and types defined in the canvas package. Most applications
// should import canvasclient to build a client, then use the returned
// canvas.Client to access resource-specific clients, for example
// Calendars(), Courses(), Users(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/canvaskit-io/canvas/pkg/canvas"
//	  "github.com/canvaskit-io/canvas/pkg/canvasclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: a base URL and an access token.
//	  cli, err := canvasclient.NewWithToken("https://canvas.instructure.com", "my-token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with full configuration through the builder:
//	  cli, err = canvasclient.NewBuilder("my-token").
//	    BaseURL("https://canvas.instructure.com").
//	    DefaultPageSize(50).
//	    Build()
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the canvas.Client interface
//	  courses, err := cli.Courses().List(canvas.NewParams()).All(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = courses
//	}
//
// # Helpers
//
// The package also provides the convenience constructor NewWithToken
// that wraps New with the appropriate configuration.
package canvasclient
