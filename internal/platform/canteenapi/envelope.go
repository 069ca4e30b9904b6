package canteenapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"canteenWeb/internal/shared/apierr"
	"canteenWeb/internal/shared/normalization"
)

const statusSuccess = "success"

// Messages accepts the API's message field, which is either a string or a list of strings.
type Messages []string

func (m *Messages) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = normalization.Messages(raw)
	return nil
}

// Envelope is the wrapper every canteen API response comes in.
type Envelope struct {
	Status     string          `json:"status"`
	Message    Messages        `json:"message"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

// normalize fills the status code from the HTTP response when the body omits it.
func (e *Envelope) normalize(httpStatus int) {
	if e.StatusCode == 0 {
		e.StatusCode = httpStatus
	}
	e.Status = strings.ToLower(strings.TrimSpace(e.Status))
}

func (e *Envelope) failed(httpStatus int) bool {
	if httpStatus >= http.StatusBadRequest || e.StatusCode >= http.StatusBadRequest {
		return true
	}
	return e.Status != "" && e.Status != statusSuccess
}

func (e *Envelope) asError(httpStatus int) *apierr.Error {
	status := e.StatusCode
	if status < http.StatusBadRequest {
		status = httpStatus
	}
	messages := []string(e.Message)
	if len(messages) == 0 {
		messages = []string{http.StatusText(status)}
	}
	return apierr.New(status, messages...)
}

// decodeData unmarshals the envelope payload into out. A missing payload leaves out untouched.
func (e *Envelope) decodeData(out any) error {
	if out == nil || len(e.Data) == 0 || string(e.Data) == "null" {
		return nil
	}
	return json.Unmarshal(e.Data, out)
}
