package handler

import (
	"net/http"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/chronotours/internal/domain"
)

// userResponse is the public view of a session. The credential token never
// leaves the process.
type userResponse struct {
	UserID              string   `json:"userId"`
	Username            string   `json:"username"`
	Email               string   `json:"email"`
	ProfilePicture      string   `json:"profilePicture,omitempty"`
	Points              int      `json:"points"`
	FavoriteTimePeriods []string `json:"favoriteTimePeriods"`
	Achievements        []string `json:"achievements"`
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *userResponse `json:"user"`
	IsLoading     bool          `json:"isLoading"`
	Error         string        `json:"error,omitempty"`
}

type loginRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

type registerRequest struct {
	Username string              `json:"username"`
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

type profileRequest struct {
	Username            *string              `json:"username"`
	Email               *openapi_types.Email `json:"email"`
	ProfilePicture      *string              `json:"profilePicture"`
	Points              *int                 `json:"points"`
	FavoriteTimePeriods *[]string            `json:"favoriteTimePeriods"`
	Achievements        *[]string            `json:"achievements"`
}

// getSession handles GET /session.
func (s *Server) getSession(w http.ResponseWriter, _ *http.Request) {
	st := s.sessions.State()
	resp := sessionResponse{IsLoading: st.IsLoading, Error: st.Error}
	if st.Session != nil {
		u := userToResponse(*st.Session)
		resp.User = &u
		resp.Authenticated = !st.Session.CredentialToken.IsZero()
	}
	writeJSON(w, http.StatusOK, resp)
}

// login handles POST /session/login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Password == "" {
		s.writeError(w, r, validationError("password is required"))
		return
	}

	sess, err := s.sessions.Login(r.Context(), string(body.Email), body.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// Bookings are cached per user; load the signed-in user's list.
	s.bookings.InitBookings(r.Context())
	writeJSON(w, http.StatusOK, userToResponse(sess))
}

// register handles POST /session/register.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.sessions.Register(r.Context(), strings.TrimSpace(body.Username), string(body.Email), body.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.bookings.InitBookings(r.Context())
	writeJSON(w, http.StatusCreated, userToResponse(sess))
}

// logout handles POST /session/logout. It succeeds without a session.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateProfile handles PATCH /session/profile.
func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var body profileRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.sessions.UpdateProfile(r.Context(), body.toUpdate())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(sess))
}

// --- mapping helpers --------------------------------------------------------

func (p profileRequest) toUpdate() domain.ProfileUpdate {
	u := domain.ProfileUpdate{
		Username:            p.Username,
		ProfilePicture:      p.ProfilePicture,
		Points:              p.Points,
		FavoriteTimePeriods: p.FavoriteTimePeriods,
		Achievements:        p.Achievements,
	}
	if p.Email != nil {
		e := string(*p.Email)
		u.Email = &e
	}
	return u
}

func userToResponse(sess domain.Session) userResponse {
	resp := userResponse{
		UserID:              sess.UserID,
		Username:            sess.Username,
		Email:               sess.Email,
		ProfilePicture:      sess.ProfilePicture,
		Points:              sess.Points,
		FavoriteTimePeriods: sess.FavoriteTimePeriods,
		Achievements:        sess.Achievements,
	}
	if resp.FavoriteTimePeriods == nil {
		resp.FavoriteTimePeriods = []string{}
	}
	if resp.Achievements == nil {
		resp.Achievements = []string{}
	}
	return resp
}
