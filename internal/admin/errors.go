package admin

import (
	"errors"
	"net/http"
)

var ErrNotAssembled = errors.New("route table not assembled")

func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotAssembled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
