package rws

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// ResponseError is a non-2xx RWS response. When the body carries an
// RWS error envelope its fields are decoded; otherwise only the status
// and raw body are populated.
//
//	<Response ReferenceNumber="82e942b0-48e8-4cf4-b299-51e2b6a89a1b"
//	    InboundODMFileOID="Not Supplied"
//	    IsTransactionSuccessful="0"
//	    ReasonCode="RWS00092"
//	    ErrorClientResponseMessage="CRF version not found" />
type ResponseError struct {
	StatusCode int    `xml:"-"`
	Body       string `xml:"-"`

	ReferenceNumber         string `xml:"ReferenceNumber,attr"`
	InboundODMFileOID       string `xml:"InboundODMFileOID,attr"`
	IsTransactionSuccessful string `xml:"IsTransactionSuccessful,attr"`
	ReasonCode              string `xml:"ReasonCode,attr"`
	ErrorDescription        string `xml:"ErrorClientResponseMessage,attr"`
	SuccessStatistics       string `xml:"SuccessStatistics,attr"`
	NewRecords              string `xml:"NewRecords,attr"`
}

func (e *ResponseError) Error() string {
	if e.ErrorDescription != "" {
		if e.ReasonCode != "" {
			return fmt.Sprintf("rws error %s: %s", e.ReasonCode, e.ErrorDescription)
		}
		return fmt.Sprintf("rws error: %s", e.ErrorDescription)
	}
	return fmt.Sprintf("rws returned status %d", e.StatusCode)
}

// odmError is the ODM-shaped error envelope some endpoints return,
// with the description in a vendor-namespaced attribute.
type odmError struct {
	XMLName          xml.Name `xml:"ODM"`
	ErrorDescription string   `xml:"http://www.mdsol.com/ns/odm/metadata ErrorDescription,attr"`
}

// asError decodes resp into a *ResponseError, tolerating bodies that
// are not an error envelope.
func (c *Connection) asError(resp *Response) error {
	re := &ResponseError{StatusCode: resp.StatusCode, Body: resp.Body}
	trimmed := strings.TrimSpace(resp.Body)
	switch {
	case strings.HasPrefix(trimmed, "<Response"):
		_ = xml.Unmarshal([]byte(trimmed), re)
	case strings.HasPrefix(trimmed, "<?xml"), strings.HasPrefix(trimmed, "<ODM"):
		var oe odmError
		if err := xml.Unmarshal([]byte(trimmed), &oe); err == nil {
			re.ErrorDescription = oe.ErrorDescription
		}
	}
	return re
}
