package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/porygon/mealplanner/internal/model"
)

const testProject = "porygon-test"

func TestSessionRoundTrip(t *testing.T) {
	s := NewSession("secret", time.Hour)

	token, err := s.Issue(&model.User{ID: "user-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, err := s.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != "user-1" || id.Email != "a@example.com" {
		t.Errorf("identity = %+v", id)
	}
}

func TestSessionRejects(t *testing.T) {
	issued := NewSession("secret", time.Hour)
	token, err := issued.Issue(&model.User{ID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}

	expired := NewSession("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	tests := []struct {
		name     string
		verifier *Session
		token    string
	}{
		{"wrong secret", NewSession("other", time.Hour), token},
		{"expired", expired, token},
		{"garbage", issued, "not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.verifier.Verify(context.Background(), tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

type keyServer struct {
	*httptest.Server
	key  *rsa.PrivateKey
	hits atomic.Int32
}

func newKeyServer(t *testing.T) *keyServer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	jwks := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": "kid-1",
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	}

	ks := &keyServer{key: key}
	ks.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ks.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(ks.Close)
	return ks
}

func (ks *keyServer) firebase(t *testing.T) *Firebase {
	t.Helper()
	f, err := NewFirebase(t.Context(), testProject, ks.URL, ks.Client())
	if err != nil {
		t.Fatalf("NewFirebase: %v", err)
	}
	return f
}

func (ks *keyServer) sign(t *testing.T, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	s, err := token.SignedString(ks.key)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"iss":   "https://securetoken.google.com/" + testProject,
		"aud":   testProject,
		"sub":   "firebase-uid",
		"email": "fb@example.com",
		"name":  "Fiona",
		"iat":   now.Add(-time.Minute).Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func TestFirebaseVerify(t *testing.T) {
	ks := newKeyServer(t)
	f := ks.firebase(t)

	id, err := f.Verify(context.Background(), ks.sign(t, "kid-1", validClaims()))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UID != "firebase-uid" || id.Email != "fb@example.com" || id.Name != "Fiona" || id.UserID != "" {
		t.Errorf("identity = %+v", id)
	}

	if _, err := f.Verify(context.Background(), ks.sign(t, "kid-1", validClaims())); err != nil {
		t.Fatalf("second Verify: %v", err)
	}
	if hits := ks.hits.Load(); hits != 1 {
		t.Errorf("key set fetches = %d, want 1 (cached)", hits)
	}
}

func TestFirebaseRejects(t *testing.T) {
	ks := newKeyServer(t)
	f := ks.firebase(t)

	wrongAud := validClaims()
	wrongAud["aud"] = "someone-else"
	wrongIss := validClaims()
	wrongIss["iss"] = "https://accounts.example.com"
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noSub := validClaims()
	delete(noSub, "sub")

	tests := []struct {
		name  string
		token string
	}{
		{"wrong audience", ks.sign(t, "kid-1", wrongAud)},
		{"wrong issuer", ks.sign(t, "kid-1", wrongIss)},
		{"expired", ks.sign(t, "kid-1", expired)},
		{"missing subject", ks.sign(t, "kid-1", noSub)},
		{"unknown kid", ks.sign(t, "kid-9", validClaims())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.Verify(context.Background(), tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestFirebaseUnknownKIDRefreshesOnce(t *testing.T) {
	ks := newKeyServer(t)
	f := ks.firebase(t)
	loaded := ks.hits.Load()

	for _, kid := range []string{"forged-1", "forged-2", "forged-3"} {
		if _, err := f.Verify(context.Background(), ks.sign(t, kid, validClaims())); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("kid %s: err = %v, want ErrInvalidToken", kid, err)
		}
	}
	if refreshes := ks.hits.Load() - loaded; refreshes > 1 {
		t.Errorf("unknown kid refreshes = %d, want at most 1", refreshes)
	}

	if _, err := f.Verify(context.Background(), ks.sign(t, "kid-1", validClaims())); err != nil {
		t.Errorf("known kid after refresh limit: %v", err)
	}
}

func TestFirebaseUnconfigured(t *testing.T) {
	f, err := NewFirebase(t.Context(), "", "http://unused.invalid", nil)
	if err != nil {
		t.Fatalf("NewFirebase: %v", err)
	}
	if _, err := f.Verify(context.Background(), "anything"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestChainTriesEachVerifier(t *testing.T) {
	ks := newKeyServer(t)
	session := NewSession("secret", time.Hour)
	chain := Chain{session, ks.firebase(t)}

	sessionToken, err := session.Issue(&model.User{ID: "user-7"})
	if err != nil {
		t.Fatal(err)
	}

	id, err := chain.Verify(context.Background(), sessionToken)
	if err != nil || id.UserID != "user-7" {
		t.Errorf("session via chain = %+v, %v", id, err)
	}

	id, err = chain.Verify(context.Background(), ks.sign(t, "kid-1", validClaims()))
	if err != nil || id.UID != "firebase-uid" {
		t.Errorf("provider via chain = %+v, %v", id, err)
	}

	if _, err := chain.Verify(context.Background(), "junk"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
