package handler

import "net/http"

type preferencesResponse struct {
	IsDarkMode bool `json:"isDarkMode"`
}

type themeRequest struct {
	IsDarkMode *bool `json:"isDarkMode"`
}

// getPreferences handles GET /preferences.
func (s *Server) getPreferences(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, preferencesResponse{IsDarkMode: s.prefs.IsDarkMode()})
}

// setTheme handles PUT /preferences/theme.
func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	var body themeRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.IsDarkMode == nil {
		s.writeError(w, r, validationError("isDarkMode is required"))
		return
	}
	s.prefs.SetTheme(r.Context(), *body.IsDarkMode)
	writeJSON(w, http.StatusOK, preferencesResponse{IsDarkMode: s.prefs.IsDarkMode()})
}

// toggleTheme handles POST /preferences/theme/toggle.
func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, preferencesResponse{IsDarkMode: s.prefs.ToggleTheme(r.Context())})
}
