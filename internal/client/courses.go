package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// CoursesClient implements canvas.CoursesClient.
type CoursesClient struct {
	client *Client
}

// NewCoursesClient creates a new courses client.
func NewCoursesClient(client *Client) *CoursesClient {
	return &CoursesClient{client: client}
}

// Get implements canvas.CoursesClient.Get.
func (c *CoursesClient) Get(ctx context.Context, courseID int64, params canvas.Params) (*canvas.Course, error) {
	path := "/api/v1/courses/" + strconv.FormatInt(courseID, 10)

	course, err := canvas.Call[canvas.Course](ctx, c.client, canvas.Get(path).WithQuery(params))
	if err != nil {
		return nil, fmt.Errorf("getting course: %w", err)
	}

	return course, nil
}

// List implements canvas.CoursesClient.List.
func (c *CoursesClient) List(params canvas.Params) *canvas.PageIterator[canvas.Course] {
	spec := canvas.Get("/api/v1/courses").WithQuery(c.client.listParams(params))

	return canvas.Paginate[canvas.Course](c.client, spec)
}

// ListUsers implements canvas.CoursesClient.ListUsers.
func (c *CoursesClient) ListUsers(courseID int64, params canvas.Params) *canvas.PageIterator[canvas.User] {
	path := "/api/v1/courses/" + strconv.FormatInt(courseID, 10) + "/users"

	spec := canvas.Get(path).WithQuery(c.client.listParams(params))

	return canvas.Paginate[canvas.User](c.client, spec)
}
