package canvas

import "time"

// AccountCalendar represents one account's calendar and its visibility.
type AccountCalendar struct {
	// ID is the ID of the account associated with this calendar.
	ID int64 `json:"id"`
	// Name is the name of the account associated with this calendar.
	Name string `json:"name"`
	// ParentAccountID is nil for the root account.
	ParentAccountID *int64 `json:"parent_account_id"`
	// RootAccountID is nil for the root account.
	RootAccountID *int64 `json:"root_account_id"`
	// Visible reports whether this calendar is visible to users.
	Visible bool `json:"visible"`
	// SubAccountCount is the number of direct sub-accounts.
	SubAccountCount int64 `json:"sub_account_count"`
	// AssetString is the asset string of the account.
	AssetString string `json:"asset_string"`
	// CalendarEventURL is the URL to get full detailed events.
	CalendarEventURL string `json:"calendar_event_url"`
	// CanCreateCalendarEvents reports whether the user can create events.
	CanCreateCalendarEvents bool `json:"can_create_calendar_events"`
	// CreateCalendarEventURL is the API path to create events for the account.
	CreateCalendarEventURL string `json:"create_calendar_event_url"`
	// NewCalendarEventURL is the URL to open the more-options event editor.
	NewCalendarEventURL string `json:"new_calendar_event_url"`
}

// Visibility is the calendar visibility filter/setting.
type Visibility string

// Calendar visibility values.
const (
	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
)

// Bool maps the visibility to the boolean form the update endpoint takes.
func (v Visibility) Bool() bool {
	return v == VisibilityVisible
}

// AccountVisibility pairs an account with a desired calendar visibility
// for bulk updates.
type AccountVisibility struct {
	ID      int64 `json:"id"`
	Visible bool  `json:"visible"`
}

// AccountCalendarsPage is the envelope the account calendars list
// endpoints wrap their items in.
type AccountCalendarsPage struct {
	AccountCalendars []AccountCalendar `json:"account_calendars"`
	TotalResults     int               `json:"total_results,omitempty"`
}

// BulkUpdateResult is the summary returned by the bulk calendar
// visibility endpoint, e.g. "Updated 2 accounts".
type BulkUpdateResult struct {
	Message string `json:"message"`
}

// VisibleCalendarsCount is the response of the visible-calendars count
// endpoint.
type VisibleCalendarsCount struct {
	Count int64 `json:"count"`
}

// AccountDomain is one entry of an account domain search.
type AccountDomain struct {
	// Name is the name of the domain.
	Name string `json:"name"`
	// Domain is the domain itself.
	Domain string `json:"domain"`
	// AuthenticationProvider is the provider param to pass to the oauth
	// flow, when one applies.
	AuthenticationProvider *string `json:"authentication_provider"`
}

// NotificationIcon selects the icon displayed with a global notification.
type NotificationIcon string

// Notification icon values.
const (
	IconWarning     NotificationIcon = "warning"
	IconInformation NotificationIcon = "information"
	IconQuestion    NotificationIcon = "question"
	IconError       NotificationIcon = "error"
	IconCalendar    NotificationIcon = "calendar"
)

// AccountNotification is a global notification shown to an account's users.
type AccountNotification struct {
	ID int64 `json:"id,omitempty"`
	// Subject is the subject of the notification.
	Subject string `json:"subject"`
	// Message is the body sent in the notification.
	Message string `json:"message"`
	// StartAt is when to send out the notification, e.g.
	// 2013-08-28T23:59:00-06:00.
	StartAt string `json:"start_at"`
	// EndAt is when to expire the notification.
	EndAt string `json:"end_at"`
	// Icon defaults to warning when unset.
	Icon NotificationIcon `json:"icon,omitempty"`
	// RoleIDs limits which roles receive the notification; all roles
	// when empty. Ignored by the create and update endpoints.
	RoleIDs []int64 `json:"role_ids,omitempty"`
}

// AccountNotificationRequest wraps a notification for the create and
// update endpoints, which expect the account_notification envelope.
type AccountNotificationRequest struct {
	AccountNotification AccountNotification `json:"account_notification"`
}

// Report describes an available report type or a generated report
// instance, depending on the endpoint.
type Report struct {
	// ID is the unique identifier of a generated report instance.
	ID int64 `json:"id,omitempty"`
	// Report is the report type name.
	Report string `json:"report"`
	// Title is the human-readable report title.
	Title string `json:"title,omitempty"`
	// FileURL is the download URL, present once the report completed.
	FileURL string `json:"file_url,omitempty"`
	// Status is the processing status of the report.
	Status string `json:"status,omitempty"`
	// CreatedAt, StartedAt, and EndedAt track report processing times.
	CreatedAt *time.Time `json:"created_at,omitempty"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	// Parameters vary per report type.
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	// Progress is the completion percentage.
	Progress int `json:"progress,omitempty"`
	// CurrentLine is the line count being written, updated every 1000
	// records.
	CurrentLine int64 `json:"current_line,omitempty"`
}

// ReportParameters are the options accepted when starting a report. The
// availability of each option varies per report type.
type ReportParameters struct {
	EnrollmentTermID       *int64  `json:"enrollment_term_id,omitempty"`
	IncludeDeleted         *bool   `json:"include_deleted,omitempty"`
	CourseID               *int64  `json:"course_id,omitempty"`
	Order                  *string `json:"order,omitempty"`
	Users                  *bool   `json:"users,omitempty"`
	Accounts               *bool   `json:"accounts,omitempty"`
	Terms                  *bool   `json:"terms,omitempty"`
	Courses                *bool   `json:"courses,omitempty"`
	Sections               *bool   `json:"sections,omitempty"`
	Enrollments            *bool   `json:"enrollments,omitempty"`
	Groups                 *bool   `json:"groups,omitempty"`
	Xlist                  *bool   `json:"xlist,omitempty"`
	SISTermsCSV            *int64  `json:"sis_terms_csv,omitempty"`
	SISAccountsCSV         *int64  `json:"sis_accounts_csv,omitempty"`
	SkipMessage            *bool   `json:"skip_message,omitempty"`
	IncludeEnrollmentState *bool   `json:"include_enrollment_state,omitempty"`
	StartAt                *string `json:"start_at,omitempty"`
	EndAt                  *string `json:"end_at,omitempty"`
}

// ReportRequest wraps the parameters for the start-report endpoint.
type ReportRequest struct {
	Parameters ReportParameters `json:"parameters"`
}

// Course represents a Canvas course.
type Course struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	CourseCode       string     `json:"course_code,omitempty"`
	WorkflowState    string     `json:"workflow_state,omitempty"`
	AccountID        int64      `json:"account_id,omitempty"`
	RootAccountID    int64      `json:"root_account_id,omitempty"`
	EnrollmentTermID int64      `json:"enrollment_term_id,omitempty"`
	StartAt          *time.Time `json:"start_at,omitempty"`
	EndAt            *time.Time `json:"end_at,omitempty"`
	IsPublic         bool       `json:"is_public,omitempty"`
	UUID             string     `json:"uuid,omitempty"`
	TotalStudents    int        `json:"total_students,omitempty"`
}

// User represents a Canvas user.
type User struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SortableName  string `json:"sortable_name,omitempty"`
	ShortName     string `json:"short_name,omitempty"`
	SISUserID     string `json:"sis_user_id,omitempty"`
	LoginID       string `json:"login_id,omitempty"`
	Email         string `json:"email,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	Locale        string `json:"locale,omitempty"`
	TimeZone      string `json:"time_zone,omitempty"`
}
