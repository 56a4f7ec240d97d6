package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the uniform error shape every failure surfaced to a client
// carries: a stable numeric code, a short title, and a human-readable
// description. Codes are stable within a build; the table below follows the
// 100s = network, 200s = workout domain, 300s = auth layout.
type AppError struct {
	Code        int    `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	HTTPStatus  int    `json:"-"`
	Err         error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Title, e.Code, e.Description, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Title, e.Code, e.Description)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors by code, so errors.Is(err, ErrInvalidWorkoutDay)
// works regardless of the description a particular instance carries.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Status returns the HTTP status to render this error with.
func (e *AppError) Status() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}

// WithDetail returns a copy of e with its description replaced, keeping the
// code and title stable.
func (e *AppError) WithDetail(format string, args ...any) *AppError {
	c := *e
	c.Description = fmt.Sprintf(format, args...)
	return &c
}

// WithCause returns a copy of e wrapping cause, keeping the presentable
// triple unchanged.
func (e *AppError) WithCause(cause error) *AppError {
	c := *e
	c.Err = cause
	return &c
}

// --- Network errors (100s) ---

var (
	ErrNoInternet = &AppError{
		Code:        100,
		Title:       "No Internet Connection",
		Description: "Please check your internet connection and try again.",
		HTTPStatus:  http.StatusBadGateway,
	}
	ErrRequestTimeout = &AppError{
		Code:        101,
		Title:       "Request Timeout",
		Description: "The request timed out. Please try again.",
		HTTPStatus:  http.StatusGatewayTimeout,
	}
	ErrInvalidResponse = &AppError{
		Code:        102,
		Title:       "Invalid Response",
		Description: "Received an invalid response from the server.",
		HTTPStatus:  http.StatusBadGateway,
	}
	ErrServerError = &AppError{
		Code:        103,
		Title:       "Server Error",
		Description: "The server returned an error.",
		HTTPStatus:  http.StatusBadGateway,
	}
)

// NewServerError builds the server-error kind carrying the upstream status code.
func NewServerError(statusCode int) *AppError {
	return ErrServerError.WithDetail("Server returned status code %d", statusCode)
}

// --- Workout domain errors (200s) ---

var (
	ErrInvalidPlan = &AppError{
		Code:        200,
		Title:       "Invalid Workout Plan",
		Description: "The workout plan is invalid. Please check your inputs.",
		HTTPStatus:  http.StatusBadRequest,
	}
	ErrGenerationFailed = &AppError{
		Code:        201,
		Title:       "Generation Failed",
		Description: "Failed to generate workout plan.",
		HTTPStatus:  http.StatusBadGateway,
	}
	ErrSaveFailed = &AppError{
		Code:        202,
		Title:       "Save Failed",
		Description: "Failed to save the workout plan. Please try again.",
		HTTPStatus:  http.StatusInternalServerError,
	}
	ErrLoadFailed = &AppError{
		Code:        203,
		Title:       "Load Failed",
		Description: "Failed to load workout plans. Please try again.",
		HTTPStatus:  http.StatusInternalServerError,
	}
	ErrDeleteFailed = &AppError{
		Code:        204,
		Title:       "Delete Failed",
		Description: "Failed to delete the workout plan. Please try again.",
		HTTPStatus:  http.StatusInternalServerError,
	}

	// Parser field-class errors. Each class is its own kind so callers can
	// tell a broken top-level structure from a bad day token from bad
	// exercise fields.
	ErrMalformedPlanData = &AppError{
		Code:        205,
		Title:       "Malformed Plan Data",
		Description: "The generated plan data could not be parsed.",
		HTTPStatus:  http.StatusBadGateway,
	}
	ErrInvalidWorkoutDay = &AppError{
		Code:        206,
		Title:       "Invalid Workout Day",
		Description: "The generated plan contains an unrecognized workout day.",
		HTTPStatus:  http.StatusBadGateway,
	}
	ErrInvalidExerciseData = &AppError{
		Code:        207,
		Title:       "Invalid Exercise Data",
		Description: "The generated plan contains invalid exercise data.",
		HTTPStatus:  http.StatusBadGateway,
	}

	ErrPlanNotFound = &AppError{
		Code:        208,
		Title:       "Plan Not Found",
		Description: "No workout plan with this id.",
		HTTPStatus:  http.StatusNotFound,
	}
)

// NewGenerationFailed builds the generation-failed kind with a reason.
func NewGenerationFailed(reason string) *AppError {
	return ErrGenerationFailed.WithDetail("Failed to generate workout plan: %s", reason)
}

// --- Auth errors (300s) ---

var (
	ErrSignUpFailed = &AppError{
		Code:        300,
		Title:       "Sign Up Failed",
		Description: "Could not create the account.",
		HTTPStatus:  http.StatusInternalServerError,
	}
	ErrSignInFailed = &AppError{
		Code:        301,
		Title:       "Sign In Failed",
		Description: "Could not sign in.",
		HTTPStatus:  http.StatusUnauthorized,
	}
	ErrSignOutFailed = &AppError{
		Code:        302,
		Title:       "Sign Out Failed",
		Description: "Could not sign out.",
		HTTPStatus:  http.StatusInternalServerError,
	}
	ErrInvalidEmail = &AppError{
		Code:        303,
		Title:       "Invalid Email",
		Description: "Please enter a valid email address",
		HTTPStatus:  http.StatusBadRequest,
	}
	ErrWeakPassword = &AppError{
		Code:        304,
		Title:       "Weak Password",
		Description: "Password must be at least 6 characters long",
		HTTPStatus:  http.StatusBadRequest,
	}
	ErrEmailAlreadyInUse = &AppError{
		Code:        305,
		Title:       "Email In Use",
		Description: "An account with this email already exists",
		HTTPStatus:  http.StatusConflict,
	}
	ErrUserNotFound = &AppError{
		Code:        306,
		Title:       "User Not Found",
		Description: "No account found with this email",
		HTTPStatus:  http.StatusNotFound,
	}
	ErrWrongPassword = &AppError{
		Code:        307,
		Title:       "Wrong Password",
		Description: "Incorrect password",
		HTTPStatus:  http.StatusUnauthorized,
	}
	ErrEmptyFields = &AppError{
		Code:        308,
		Title:       "Empty Fields",
		Description: "Please fill in all fields",
		HTTPStatus:  http.StatusBadRequest,
	}
	ErrAuthNetwork = &AppError{
		Code:        309,
		Title:       "Network Error",
		Description: "Network error. Please check your connection",
		HTTPStatus:  http.StatusBadGateway,
	}
	ErrEmailNotVerified = &AppError{
		Code:        310,
		Title:       "Email Not Verified",
		Description: "Please verify your email address before signing in",
		HTTPStatus:  http.StatusForbidden,
	}
)

// Wrap converts any error into an AppError for presentation. Errors that are
// already AppErrors pass through untouched; anything else becomes the opaque
// 999 kind so no internal detail leaks with an unstable code.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:        999,
		Title:       "Unexpected Error",
		Description: err.Error(),
		HTTPStatus:  http.StatusInternalServerError,
		Err:         err,
	}
}
