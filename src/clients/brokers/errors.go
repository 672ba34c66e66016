package brokers

import (
	"errors"
	"net/http"

	"famwealth/src/utils"
)

var ErrUnknownBroker = errors.New("unknown broker")

// WrapError turns a request failure into the broker error taxonomy: 401 and
// 403 become AuthenticationError, everything else TransportError.
func WrapError(broker, op string, err error) error {
	if err == nil {
		return nil
	}
	var httpErr *utils.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code == http.StatusUnauthorized || httpErr.Code == http.StatusForbidden {
			return &utils.AuthenticationError{Broker: broker, Err: err}
		}
		return &utils.TransportError{Broker: broker, Op: op, StatusCode: httpErr.Code, Err: err}
	}
	return &utils.TransportError{Broker: broker, Op: op, Err: err}
}
