// Package models defines the request, response and storage shapes shared
// by the HTTP surface, the service layer and the repositories.
package models

// GenerateRequest is the JSON body of POST /api/generate.
type GenerateRequest struct {
	// Length is the number of characters in each password.
	Length int `json:"length"`
	// Digits enables 0-9.
	Digits bool `json:"digits"`
	// LowerCase enables a-z.
	LowerCase bool `json:"lowercase"`
	// UpperCase enables A-Z.
	UpperCase bool `json:"uppercase"`
	// Count is how many passwords to issue; 0 means one.
	Count int `json:"count,omitempty"`
}

// GenerateResponse carries freshly issued passwords.
type GenerateResponse struct {
	Passwords []string `json:"passwords"`
}

// StatsResponse is the JSON body of GET /api/stats.
type StatsResponse struct {
	// Issued is the number of fingerprints recorded so far.
	Issued int64 `json:"issued"`
}
