package twilio

import (
	"encoding/xml"
	"fmt"
)

// Message is the subset of the Messages resource the service reads.
type Message struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
	From   string `json:"from"`
}

// APIError is the error body returned by the Twilio REST API.
type APIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twilio API error %d (code %d): %s", e.Status, e.Code, e.Message)
}

// MessagingResponse is a TwiML reply to an inbound SMS.
type MessagingResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// TwiML renders a single-message TwiML document.
func TwiML(message string) ([]byte, error) {
	out, err := xml.Marshal(MessagingResponse{Messages: []string{message}})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
