package domain

// Preference holds process-wide UI preferences. The zero value is the
// default: light mode.
type Preference struct {
	IsDarkMode bool `json:"isDarkMode"`
}
