package identity

import "time"

// Credentials is the login record kept separately from the full profile.
// The password is stored as a bcrypt hash; the phone number is the login
// identifier of this single-user installation.
type Credentials struct {
	UserID       string    `json:"userId"`
	PhoneNumber  string    `json:"phoneNumber"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the personal-information record accumulated across the
// four signup steps and finalized when the security PIN is set.
type Profile struct {
	UserID             string    `json:"userId"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Gender             string    `json:"gender"`
	DateOfBirth        string    `json:"dateOfBirth"`
	PlaceOfBirth       string    `json:"placeOfBirth"`
	Nationality        string    `json:"nationality"`
	CountryOfResidence string    `json:"countryOfResidence"`
	Occupation         string    `json:"occupation"`
	SecurityPIN        string    `json:"securityPin"`
	IDPhotoRef         string    `json:"idPhotoRef,omitempty"`
	SignupDate         time.Time `json:"signupDate"`
}

// Draft is the resumable signup accumulator. It is persisted after
// every field change so an interrupted flow picks up where it left off.
// The password stays plaintext in the draft and is hashed only when the
// account materializes.
type Draft struct {
	Email              string `json:"email,omitempty"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`
	Password           string `json:"password,omitempty"`
	FirstName          string `json:"firstName,omitempty"`
	LastName           string `json:"lastName,omitempty"`
	Gender             string `json:"gender,omitempty"`
	DateOfBirth        string `json:"dateOfBirth,omitempty"`
	PlaceOfBirth       string `json:"placeOfBirth,omitempty"`
	Nationality        string `json:"nationality,omitempty"`
	CountryOfResidence string `json:"countryOfResidence,omitempty"`
	Occupation         string `json:"occupation,omitempty"`
	IDPhotoRef         string `json:"idPhotoRef,omitempty"`
}

// StepFour is the transient cache for the final signup step, kept apart
// from the draft like the other per-step records.
type StepFour struct {
	SecurityPIN        string `json:"securityPin"`
	ConfirmSecurityPIN string `json:"confirmSecurityPin"`
	TermsAccepted      bool   `json:"termsAccepted"`
}

// Account bundles the records produced by a completed signup.
type Account struct {
	Profile     Profile
	Credentials Credentials
}
