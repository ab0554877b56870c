package models

import "strings"

// LoginForm is posted by the landing page.
type LoginForm struct {
	RegNo    string `form:"reg_no" json:"reg_no" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Normalize trims both fields and upper-cases the registration number.
func (f *LoginForm) Normalize() {
	f.RegNo = strings.ToUpper(strings.TrimSpace(f.RegNo))
	f.Password = strings.TrimSpace(f.Password)
}

// SignupForm is posted by the signup page. OtherNames is the only optional field.
type SignupForm struct {
	Surname     string `form:"surname" json:"surname" validate:"required"`
	FirstName   string `form:"first_name" json:"first_name" validate:"required"`
	OtherNames  string `form:"other_names" json:"other_names"`
	RegNo       string `form:"reg_no" json:"reg_no" validate:"required"`
	Department  string `form:"department" json:"department" validate:"required"`
	Faculty     string `form:"faculty" json:"faculty" validate:"required"`
	PhoneNumber string `form:"phone_number" json:"phone_number" validate:"required"`
	Gender      string `form:"gender" json:"gender" validate:"required"`
	Role        string `form:"role" json:"role" validate:"required"`
	Password    string `form:"password" json:"password" validate:"required"`
}

// Normalize trims every text field. Gender and role come from selects and are left as sent.
func (f *SignupForm) Normalize() {
	for _, field := range []*string{&f.Surname, &f.FirstName, &f.OtherNames, &f.RegNo, &f.Department, &f.Faculty, &f.PhoneNumber, &f.Password} {
		*field = strings.TrimSpace(*field)
	}
}

// ComplaintForm is posted from the "make complaint" section of either dashboard.
type ComplaintForm struct {
	Complaint string `form:"complaint" json:"complaint" validate:"required"`
}

func (f *ComplaintForm) Normalize() {
	f.Complaint = strings.TrimSpace(f.Complaint)
}

// RespondForm is posted from one complaint card in the DOI "respond" section.
type RespondForm struct {
	ComplaintID     string `form:"complaint_id" json:"complaint_id" validate:"required"`
	StudentRegNo    string `form:"student_reg_no" json:"student_reg_no"`
	ResponseMessage string `form:"response_message" json:"response_message" validate:"required"`
}

func (f *RespondForm) Normalize() {
	f.ComplaintID = strings.TrimSpace(f.ComplaintID)
	f.ResponseMessage = strings.TrimSpace(f.ResponseMessage)
}
