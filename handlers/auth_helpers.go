package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"muhasab-server/db"
	"muhasab-server/shared"
	"muhasab-server/types"

	"github.com/golang-jwt/jwt/v5"
)

const tokenExpirationDays = 30

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	return []byte(secret), nil
}

func issueToken(userId string) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userId,
		"iat": now.Unix(),
		"exp": now.AddDate(0, 0, tokenExpirationDays).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %v", err)
	}

	return signed, nil
}

func parseToken(tokenStr string) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return "", fmt.Errorf("error parsing token: %v", err)
	}

	if !parsed.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userId, err := claims.GetSubject()
	if err != nil || userId == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return userId, nil
}

func authenticate(w http.ResponseWriter, r *http.Request) *types.ServerAuth {
	authHeader := r.Header.Get("Authorization")

	if authHeader == "" {
		log.Println("no auth header")
		http.Error(w, "no auth header", http.StatusUnauthorized)
		return nil
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Println("invalid auth header")
		http.Error(w, "invalid auth header", http.StatusUnauthorized)
		return nil
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

	userId, err := parseToken(tokenStr)
	if err != nil {
		log.Printf("error validating auth token: %v\n", err)

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid auth token",
		})
		return nil
	}

	user, err := db.GetUser(userId)

	if err != nil {
		log.Printf("error getting user: %v\n", err)
		http.Error(w, "error getting user", http.StatusInternalServerError)
		return nil
	}

	if user == nil {
		log.Println("token user no longer exists")
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid auth token",
		})
		return nil
	}

	return &types.ServerAuth{
		UserId: userId,
		User:   user,
	}
}

// googleTokenInfoUrl is a var so tests can point it at a local server.
var googleTokenInfoUrl = "https://oauth2.googleapis.com/tokeninfo"

type googleTokenInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Audience      string `json:"aud"`
}

func verifyGoogleIdToken(idToken string) (*googleTokenInfo, error) {
	resp, err := http.Get(googleTokenInfoUrl + "?id_token=" + idToken)
	if err != nil {
		return nil, fmt.Errorf("error calling tokeninfo endpoint: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading tokeninfo response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo endpoint returned status %d", resp.StatusCode)
	}

	var info googleTokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("error parsing tokeninfo response: %v", err)
	}

	clientId := os.Getenv("GOOGLE_CLIENT_ID")
	if clientId == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID environment variable must be set")
	}

	if info.Audience != clientId {
		return nil, fmt.Errorf("token audience mismatch")
	}

	if info.Sub == "" || info.Email == "" {
		return nil, fmt.Errorf("tokeninfo response missing subject or email")
	}

	return &info, nil
}
