//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"coworkhub/internal/handler/dto/request"
	"coworkhub/internal/handler/dto/response"
	"coworkhub/internal/usecase/queries"
	"coworkhub/tests/common/authtest"
	"coworkhub/tests/common/dbtest"
	"coworkhub/tests/common/httptest"
	"coworkhub/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	refreshURL  = "/api/auth/refresh"
	meURL       = "/api/auth/me"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func (s *AuthSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestRegisterAndLogin() {
	s.Run("Normal case: register then log in and read the profile", func() {
		t := s.T()

		reqBody := request.RegisterRequest{Email: "new@example.com", Password: "password123", NFTHolder: true}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var registered queries.AuthorizedUserView
		err := httptest.DecodeResponseBody(t, w.Body, &registered)
		require.NoError(t, err)
		require.Equal(t, "new@example.com", registered.Email)
		require.True(t, registered.NFTHolder)

		token := authtest.LoginUser(t, s.Router, "new@example.com", "password123")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me queries.AuthorizedUserView
		err = httptest.DecodeResponseBody(t, w.Body, &me)
		require.NoError(t, err)
		require.Equal(t, registered.ID, me.ID)
		require.Equal(t, "user", me.Role)
	})

	s.Run("Error case: duplicate email returns 409", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "taken@example.com", "user")

		reqBody := request.RegisterRequest{Email: "taken@example.com", Password: "password123"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: wrong password returns 401", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")

		reqBody := request.LoginRequest{Email: "member@example.com", Password: "not-the-password"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}

func (s *AuthSuite) TestRefresh() {
	s.Run("Normal case: refresh cookie yields a fresh access token", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "member@example.com", "user")

		reqBody := request.LoginRequest{Email: "member@example.com", Password: "password123"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		refreshCookie := httptest.ExtractCookie(w, "refresh_token")
		require.NotNil(t, refreshCookie)

		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, refreshURL, nil,
			[]*http.Cookie{refreshCookie}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var refreshed response.RefreshResponse
		err := httptest.DecodeResponseBody(t, w.Body, &refreshed)
		require.NoError(t, err)
		require.NotEmpty(t, refreshed.AccessToken)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, refreshed.AccessToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Error case: missing refresh token returns 401", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}
