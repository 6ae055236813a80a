package client

import (
	"fmt"

	"github.com/dmitrijs2005/luggify/internal/common"
)

// ServerError is a non-2xx answer other than 404. It matches
// common.ErrServer under errors.Is.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error: status %d: %s", e.StatusCode, e.Body)
}

func (e *ServerError) Is(target error) bool {
	return target == common.ErrServer
}
