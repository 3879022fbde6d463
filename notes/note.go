// Package notes implements the note store contract used by the note list:
// a JSON-over-HTTP client, a SQLite-backed store and a server exposing that
// store on the same routes.
//
// Every response carries a numeric code. Zero means success; anything else
// is a failure, and callers must not update local state on a failure.
package notes

import (
	"errors"
	"fmt"
)

// Response codes.
const (
	CodeOK         = 0
	CodeBadRequest = 1
	CodeNotFound   = 2
	CodeInternal   = 3
)

// Note is one entry of the note list.
type Note struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Response is the envelope every route answers with. Data is only set by
// the list route.
type Response struct {
	Code int    `json:"code"`
	Data []Note `json:"data,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

type addRequest struct {
	Title string `json:"title"`
}

type editRequest struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type deleteRequest struct {
	ID int64 `json:"id"`
}

// StatusError reports a response whose code was not CodeOK.
type StatusError struct {
	Op   string
	Code int
	Msg  string
}

func (e *StatusError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("notes: %s failed with code %d: %s", e.Op, e.Code, e.Msg)
	}
	return fmt.Sprintf("notes: %s failed with code %d", e.Op, e.Code)
}

// IsStatus reports whether err carries a non-zero response code.
func IsStatus(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// ErrNotFound is returned by Store when a note id does not exist.
var ErrNotFound = errors.New("notes: note not found")

// ErrEmptyTitle is returned when adding or editing with a blank title.
var ErrEmptyTitle = errors.New("notes: title is empty")
