package models

import (
	"bytes"
	"encoding/json"
)

// OpaqueID is an identifier minted by the SIFMS API. It is kept as text whether the API
// sends a JSON string or a number.
type OpaqueID string

// UnmarshalJSON accepts strings, numbers and null.
func (id *OpaqueID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = OpaqueID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = OpaqueID(n.String())
	return nil
}

// String returns the raw id.
func (id OpaqueID) String() string { return string(id) }

// Complaint is a student's free-text submission together with the DOI replies it has
// received, in the order the API returned them.
type Complaint struct {
	ComplaintID  OpaqueID   `json:"complaint_id"`
	StudentRegNo string     `json:"student_reg_no"`
	StudentName  string     `json:"student_name"`
	Complaint    string     `json:"complaint"`
	Timestamp    string     `json:"timestamp"`
	Responses    []Response `json:"responses"`
}

// Response is a DOI reply attached to a complaint.
type Response struct {
	DOIRegNo        string `json:"doi_reg_no"`
	DOIName         string `json:"doi_name"`
	ResponseMessage string `json:"response_message"`
	ResponseTime    string `json:"response_time"`
}

// AnsweredBy reports whether regNo authored at least one response.
func (c Complaint) AnsweredBy(regNo string) bool {
	for _, r := range c.Responses {
		if r.DOIRegNo == regNo {
			return true
		}
	}
	return false
}
