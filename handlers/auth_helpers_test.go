package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := issueToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userId, err := parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userId)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := issueToken("user-123")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")

	_, err = parseToken(token)
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := jwt.MapClaims{
		"sub": "user-123",
		"iat": time.Now().Add(-48 * time.Hour).Unix(),
		"exp": time.Now().Add(-24 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = parseToken(expired)
	require.Error(t, err)
}

func TestParseToken_WrongSigningMethod(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// alg: none tokens must always be rejected
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "user-123"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = parseToken(unsigned)
	require.Error(t, err)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	rr := httptest.NewRecorder()

	auth := authenticate(rr, req)
	assert.Nil(t, auth)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rr := httptest.NewRecorder()

	auth := authenticate(rr, req)
	assert.Nil(t, auth)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()

	auth := authenticate(rr, req)
	assert.Nil(t, auth)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestVerifyGoogleIdToken(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "test-client-id")

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idToken := r.URL.Query().Get("id_token")

		switch idToken {
		case "good-token":
			json.NewEncoder(w).Encode(googleTokenInfo{
				Sub:           "google-sub-1",
				Email:         "user@example.com",
				EmailVerified: "true",
				Name:          "Test User",
				Audience:      "test-client-id",
			})
		case "wrong-aud":
			json.NewEncoder(w).Encode(googleTokenInfo{
				Sub:      "google-sub-1",
				Email:    "user@example.com",
				Audience: "some-other-client",
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_token"}`)
		}
	}))
	defer mockServer.Close()

	origUrl := googleTokenInfoUrl
	googleTokenInfoUrl = mockServer.URL
	defer func() { googleTokenInfoUrl = origUrl }()

	info, err := verifyGoogleIdToken("good-token")
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", info.Sub)
	assert.Equal(t, "user@example.com", info.Email)

	_, err = verifyGoogleIdToken("wrong-aud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audience")

	_, err = verifyGoogleIdToken("bad-token")
	require.Error(t, err)
}
