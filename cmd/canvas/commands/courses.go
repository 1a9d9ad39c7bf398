package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// NewCoursesCommand creates the courses command group.
func NewCoursesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"course"},
		Short:   "Browse courses",
	}

	cmd.AddCommand(newCoursesListCommand())
	cmd.AddCommand(newCoursesGetCommand())
	cmd.AddCommand(newCoursesUsersCommand())

	return cmd
}

func newCoursesListCommand() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the current user's courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := canvas.NewParams()
			if state != "" {
				params = params.Add("enrollment_state", state)
			}

			courses, err := client.Courses().List(params).All(context.Background())
			if err != nil {
				return fmt.Errorf("listing courses: %w", err)
			}

			if done, err := renderStructured(courses); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Code", "State")

			for _, course := range courses {
				_ = table.Append(
					strconv.FormatInt(course.ID, 10),
					course.Name,
					course.CourseCode,
					course.WorkflowState,
				)
			}

			return table.Render()
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "filter by enrollment state (active, invited_or_pending, completed)")

	return cmd
}

func newCoursesGetCommand() *cobra.Command {
	var includes []string

	cmd := &cobra.Command{
		Use:   "get COURSE_ID",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid course ID %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := canvas.NewParams()
			for _, include := range includes {
				params = params.Add("include[]", include)
			}

			course, err := client.Courses().Get(context.Background(), courseID, params)
			if err != nil {
				return fmt.Errorf("getting course: %w", err)
			}

			if done, err := renderStructured(course); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("ID", strconv.FormatInt(course.ID, 10))
			_ = table.Append("Name", course.Name)
			_ = table.Append("Code", course.CourseCode)
			_ = table.Append("State", course.WorkflowState)

			if course.TotalStudents > 0 {
				_ = table.Append("Students", strconv.Itoa(course.TotalStudents))
			}

			return table.Render()
		},
	}

	cmd.Flags().StringSliceVar(&includes, "include", nil, "extra fields to include (term, total_students, teachers)")

	return cmd
}

func newCoursesUsersCommand() *cobra.Command {
	var enrollmentType string

	cmd := &cobra.Command{
		Use:   "users COURSE_ID",
		Short: "List users enrolled in a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid course ID %q: %w", args[0], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := canvas.NewParams()
			if enrollmentType != "" {
				params = params.Add("enrollment_type[]", enrollmentType)
			}

			users, err := client.Courses().ListUsers(courseID, params).All(context.Background())
			if err != nil {
				return fmt.Errorf("listing course users: %w", err)
			}

			return outputUsers(users)
		},
	}

	cmd.Flags().StringVar(&enrollmentType, "type", "", "filter by enrollment type (student, teacher, ta, observer)")

	return cmd
}
