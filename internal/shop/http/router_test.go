package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/internal/shop/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "shophttp")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

const (
	testIssuer         = "storefront-test"
	testBootstrapToken = "let-me-in"
)

type testServer struct {
	router *Router
	st     *sqlite.Store
	keys   *jwtx.KeyRing
}

func newTestServer(t *testing.T, bootstrapToken string) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	keys, err := jwtx.NewKeyRing(jwtx.KeyRingOptions{Issuer: testIssuer, NumKeys: 2})
	require.NoError(t, err)

	sessions := &service.SessionIssuer{Signer: keys, Issuer: testIssuer, TTL: time.Hour}
	twoFactor := &service.TwoFactorService{Store: st, Issuer: "Storefront"}

	r := NewRouter(keys, "test", st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.SignInService = &service.SignInService{Store: st, Sessions: sessions}
	r.AccountService = &service.AccountService{Store: st, Sessions: sessions}
	r.BootstrapService = &service.BootstrapService{Store: st, Token: bootstrapToken, Sessions: sessions}
	r.ProfileService = &service.ProfileService{Store: st, Sessions: sessions, TwoFactor: twoFactor}
	r.TwoFactorService = twoFactor
	r.CategoryService = &service.CategoryService{Store: st}
	r.UploadService = &service.UploadService{Dir: t.TempDir(), MaxBytes: 1024}
	r.ApplyRoutes()

	return &testServer{router: r, st: st, keys: keys}
}

// do sends body as JSON (nil for none) and returns the recorded response.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signUp(t *testing.T, email string) shopsdk.Session {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/users/signup", "", shopsdk.SignUpRequest{
		Name: "Test User", Email: email, Password: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[shopsdk.Session](t, rec)
}

func (s *testServer) bootstrapAdmin(t *testing.T) shopsdk.Session {
	t.Helper()
	raw, err := json.Marshal(shopsdk.SignUpRequest{Name: "Admin", Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bootstrap", bytes.NewReader(raw))
	req.Header.Set(BootstrapHeader, testBootstrapToken)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[shopsdk.Session](t, rec)
}

// enableTwoFactor walks enroll and confirm over HTTP and returns the secret.
func (s *testServer) enableTwoFactor(t *testing.T, token string) (string, []string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/users/2fa/enroll", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	setup := decode[shopsdk.TwoFactorSetup](t, rec)
	require.NotEmpty(t, setup.Secret)

	rec = s.do(t, http.MethodPost, "/api/users/2fa/confirm", token, shopsdk.TwoFactorCodeRequest{Code: totpCode(t, setup.Secret)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	codes := decode[shopsdk.BackupCodesResponse](t, rec)
	require.Len(t, codes.BackupCodes, 10)
	return setup.Secret, codes.BackupCodes
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireMessage(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	require.Equal(t, msg, decode[shopsdk.ErrorResponse](t, rec).Message)
}

func totpCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	return code
}

// badCode returns a code that no accepted time step produces for secret.
func badCode(t *testing.T, secret string) string {
	t.Helper()
	now := time.Now()
	valid := map[string]bool{}
	for step := -2; step <= 2; step++ {
		code, err := totp.GenerateCode(secret, now.Add(time.Duration(step)*30*time.Second))
		require.NoError(t, err)
		valid[code] = true
	}
	for _, c := range []string{"000000", "111111", "222222", "333333", "444444", "555555"} {
		if !valid[c] {
			return c
		}
	}
	t.Fatal("no invalid code candidate")
	return ""
}

func TestSignIn(t *testing.T) {
	t.Run("account without 2FA gets a session", func(t *testing.T) {
		s := newTestServer(t, "")
		signedUp := s.signUp(t, "ada@example.com")

		rec := s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{
			Email: "ADA@example.com", Password: "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		sess := decode[shopsdk.SignInResponse](t, rec)
		require.False(t, sess.Require2FA)
		require.Equal(t, signedUp.ID, sess.ID)
		require.Equal(t, "ada@example.com", sess.Email)
		require.NotEmpty(t, sess.Token)

		claims, err := s.keys.Verify(sess.Token)
		require.NoError(t, err)
		require.Equal(t, signedUp.ID, claims.Subject)
	})

	t.Run("every primary failure looks the same", func(t *testing.T) {
		s := newTestServer(t, "")
		s.signUp(t, "ada@example.com")

		wrongPassword := s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{
			Email: "ada@example.com", Password: "nope-nope",
		})
		requireMessage(t, wrongPassword, http.StatusUnauthorized, "Invalid email, password or code")

		unknown := s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{
			Email: "ghost@example.com", Password: "password123",
		})
		requireMessage(t, unknown, http.StatusUnauthorized, "Invalid email, password or code")
		require.Equal(t, wrongPassword.Body.String(), unknown.Body.String())
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		s := newTestServer(t, "")
		req := httptest.NewRequest(http.MethodPost, "/api/users/signin", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		requireMessage(t, rec, http.StatusBadRequest, "Invalid request body")
	})

	t.Run("2FA account needs the token on a second round", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")
		secret, _ := s.enableTwoFactor(t, sess.Token)

		rec := s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{
			Email: "ada@example.com", Password: "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"require2FA":true}`, rec.Body.String())

		rec = s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{
			Email: "ada@example.com", Password: "password123", TwoFactorToken: badCode(t, secret),
		})
		requireMessage(t, rec, http.StatusUnauthorized, "Invalid email, password or code")

		rec = s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{
			Email: "ada@example.com", Password: "password123", TwoFactorToken: totpCode(t, secret),
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		final := decode[shopsdk.SignInResponse](t, rec)
		require.False(t, final.Require2FA)
		require.True(t, final.TwoFactorEnabled)

		claims, err := s.keys.Verify(final.Token)
		require.NoError(t, err)
		require.True(t, claims.HasAMR(jwtx.AMROTP))
	})

	t.Run("a valid code does not rescue a wrong password", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")
		secret, _ := s.enableTwoFactor(t, sess.Token)

		rec := s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{
			Email: "ada@example.com", Password: "wrong-password", TwoFactorToken: totpCode(t, secret),
		})
		requireMessage(t, rec, http.StatusUnauthorized, "Invalid email, password or code")
	})

	t.Run("backup code works once", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")
		_, backup := s.enableTwoFactor(t, sess.Token)

		primary := shopsdk.SignInRequest{Email: "ada@example.com", Password: "password123"}
		req := shopsdk.SignInRequest{Email: "ada@example.com", Password: "password123", TwoFactorToken: backup[0]}

		s.do(t, http.MethodPost, "/api/users/signin", "", primary)
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/users/signin", "", req).Code)

		s.do(t, http.MethodPost, "/api/users/signin", "", primary)
		requireMessage(t, s.do(t, http.MethodPost, "/api/users/signin", "", req),
			http.StatusUnauthorized, "Invalid email, password or code")
	})

	t.Run("token without a primary round is rejected", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")
		secret, _ := s.enableTwoFactor(t, sess.Token)

		rec := s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{
			Email: "ada@example.com", Password: "password123", TwoFactorToken: totpCode(t, secret),
		})
		requireMessage(t, rec, http.StatusUnauthorized, "Invalid email, password or code")
	})

	t.Run("wrong codes close the challenge until the next primary round", func(t *testing.T) {
		relaxStrictLimit(t)
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")
		secret, _ := s.enableTwoFactor(t, sess.Token)

		primary := shopsdk.SignInRequest{Email: "ada@example.com", Password: "password123"}
		withCode := func(code string) shopsdk.SignInRequest {
			return shopsdk.SignInRequest{Email: "ada@example.com", Password: "password123", TwoFactorToken: code}
		}

		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/users/signin", "", primary).Code)
		bad := badCode(t, secret)
		for i := range service.MaxChallengeAttempts {
			rec := s.do(t, http.MethodPost, "/api/users/signin", "", withCode(bad))
			require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i)
		}

		rec := s.do(t, http.MethodPost, "/api/users/signin", "", withCode(totpCode(t, secret)))
		requireMessage(t, rec, http.StatusUnauthorized, "Invalid email, password or code")

		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/users/signin", "", primary).Code)
		rec = s.do(t, http.MethodPost, "/api/users/signin", "", withCode(totpCode(t, secret)))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NotEmpty(t, decode[shopsdk.SignInResponse](t, rec).Token)
	})
}

// relaxStrictLimit lifts the credential rate limit for routers built after
// the call.
func relaxStrictLimit(t *testing.T) {
	t.Helper()
	prev := httpx.StrictLimit
	httpx.StrictLimit = httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	t.Cleanup(func() { httpx.StrictLimit = prev })
}

func TestVerifyTwoFactor(t *testing.T) {
	t.Run("requires an open challenge", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")
		secret, _ := s.enableTwoFactor(t, sess.Token)

		rec := s.do(t, http.MethodPost, "/api/users/verify-2fa", "", shopsdk.VerifyTwoFactorRequest{
			Email: "ada@example.com", TwoFactorToken: totpCode(t, secret),
		})
		requireMessage(t, rec, http.StatusUnauthorized, "Invalid email, password or code")
	})

	t.Run("answers the challenge opened by the password", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")
		secret, _ := s.enableTwoFactor(t, sess.Token)

		rec := s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{
			Email: "ada@example.com", Password: "password123",
		})
		require.JSONEq(t, `{"require2FA":true}`, rec.Body.String())

		rec = s.do(t, http.MethodPost, "/api/users/verify-2fa", "", shopsdk.VerifyTwoFactorRequest{
			Email: "ada@example.com", TwoFactorToken: totpCode(t, secret),
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NotEmpty(t, decode[shopsdk.Session](t, rec).Token)

		// The challenge is spent.
		rec = s.do(t, http.MethodPost, "/api/users/verify-2fa", "", shopsdk.VerifyTwoFactorRequest{
			Email: "ada@example.com", TwoFactorToken: totpCode(t, secret),
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAccounts(t *testing.T) {
	s := newTestServer(t, "")

	t.Run("sign-up validates input", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users/signup", "", shopsdk.SignUpRequest{
			Name: "Short", Email: "short@example.com", Password: "123",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		rec = s.do(t, http.MethodPost, "/api/users/signup", "", shopsdk.SignUpRequest{
			Name: "Bad", Email: "not-an-email", Password: "password123",
		})
		requireMessage(t, rec, http.StatusBadRequest, "Invalid email address")
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		s.signUp(t, "dup@example.com")
		rec := s.do(t, http.MethodPost, "/api/users/signup", "", shopsdk.SignUpRequest{
			Name: "Again", Email: "Dup@Example.com", Password: "password123",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("me needs a token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/users/me", "", nil)
		requireMessage(t, rec, http.StatusUnauthorized, "No Token")

		rec = s.do(t, http.MethodGet, "/api/users/me", "garbage", nil)
		requireMessage(t, rec, http.StatusUnauthorized, "Invalid Token")
	})

	t.Run("me returns the caller", func(t *testing.T) {
		sess := s.signUp(t, "me@example.com")
		rec := s.do(t, http.MethodGet, "/api/users/me", sess.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		me := decode[shopsdk.UserResponse](t, rec)
		require.Equal(t, sess.ID, me.ID)
		require.False(t, me.IsAdmin)
	})
}

func TestBootstrap(t *testing.T) {
	t.Run("disabled without a token", func(t *testing.T) {
		s := newTestServer(t, "")
		rec := s.do(t, http.MethodPost, "/api/bootstrap", "", shopsdk.SignUpRequest{})
		requireMessage(t, rec, http.StatusNotFound, "Bootstrap not enabled")
	})

	t.Run("creates the first admin once", func(t *testing.T) {
		s := newTestServer(t, testBootstrapToken)

		rec := s.do(t, http.MethodPost, "/api/bootstrap", "", shopsdk.SignUpRequest{
			Name: "Admin", Email: "admin@example.com", Password: "password123",
		})
		requireMessage(t, rec, http.StatusUnauthorized, "Invalid bootstrap token")

		admin := s.bootstrapAdmin(t)
		require.True(t, admin.IsAdmin)

		raw, err := json.Marshal(shopsdk.SignUpRequest{Name: "Other", Email: "other@example.com", Password: "password123"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/bootstrap", bytes.NewReader(raw))
		req.Header.Set(BootstrapHeader, testBootstrapToken)
		rec = httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		requireMessage(t, rec, http.StatusConflict, "System already bootstrapped")
	})
}

func TestCategories(t *testing.T) {
	s := newTestServer(t, testBootstrapToken)
	admin := s.bootstrapAdmin(t)
	user := s.signUp(t, "user@example.com")

	t.Run("writes need an admin", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/categories", "", shopsdk.CategoryRequest{Name: "Shoes"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = s.do(t, http.MethodPost, "/api/categories", user.Token, shopsdk.CategoryRequest{Name: "Shoes"})
		requireMessage(t, rec, http.StatusForbidden, "Invalid Admin Token")
	})

	var shoes shopsdk.Category
	t.Run("create", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/categories", admin.Token, shopsdk.CategoryRequest{Name: "Shoes"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		resp := decode[shopsdk.CategoryResponse](t, rec)
		require.Equal(t, "Category Created", resp.Message)
		require.Equal(t, "shoes", resp.Category.Slug)
		shoes = resp.Category

		rec = s.do(t, http.MethodPost, "/api/categories", admin.Token, shopsdk.CategoryRequest{Name: "Shoes"})
		requireMessage(t, rec, http.StatusConflict, "Category Already Exists")

		rec = s.do(t, http.MethodPost, "/api/categories", admin.Token, shopsdk.CategoryRequest{Name: "  "})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		// Same slug, different name.
		rec = s.do(t, http.MethodPost, "/api/categories", admin.Token, shopsdk.CategoryRequest{Name: "SHOES!"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		require.Equal(t, "shoes-01", decode[shopsdk.CategoryResponse](t, rec).Category.Slug)
	})

	t.Run("list and get are public", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/categories", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decode[[]shopsdk.Category](t, rec), 2)

		rec = s.do(t, http.MethodGet, "/api/categories/"+shoes.ID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Shoes", decode[shopsdk.Category](t, rec).Name)

		rec = s.do(t, http.MethodGet, "/api/categories/missing", "", nil)
		requireMessage(t, rec, http.StatusNotFound, "Category Not Found")
	})

	t.Run("update regenerates the slug", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/categories/"+shoes.ID, admin.Token, shopsdk.CategoryRequest{Name: "Running Shoes"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[shopsdk.CategoryResponse](t, rec)
		require.Equal(t, "Category Updated", resp.Message)
		require.Equal(t, "running-shoes", resp.Category.Slug)

		rec = s.do(t, http.MethodPut, "/api/categories/missing", admin.Token, shopsdk.CategoryRequest{Name: "X"})
		requireMessage(t, rec, http.StatusNotFound, "Category Not Found")
	})

	t.Run("delete", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/api/categories/"+shoes.ID, admin.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode[shopsdk.CategoryResponse](t, rec)
		require.Equal(t, "Category Deleted", resp.Message)
		require.Equal(t, shoes.ID, resp.Category.ID)

		rec = s.do(t, http.MethodDelete, "/api/categories/"+shoes.ID, admin.Token, nil)
		requireMessage(t, rec, http.StatusNotFound, "Category Not Found")
	})
}

func TestUpload(t *testing.T) {
	s := newTestServer(t, testBootstrapToken)
	admin := s.bootstrapAdmin(t)

	post := func(t *testing.T, field, filename string, content []byte) *httptest.ResponseRecorder {
		t.Helper()
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		if field != "" {
			fw, err := mw.CreateFormFile(field, filename)
			require.NoError(t, err)
			_, err = fw.Write(content)
			require.NoError(t, err)
		} else {
			require.NoError(t, mw.WriteField("note", "nothing here"))
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+admin.Token)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("stores and serves the file", func(t *testing.T) {
		rec := post(t, UploadField, "../../shoe.png", []byte("png-bytes"))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		up := decode[shopsdk.UploadResponse](t, rec)
		require.Regexp(t, `^/images/\d+-shoe\.png$`, up.Path)

		rec = s.do(t, http.MethodGet, up.Path, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "png-bytes", rec.Body.String())
	})

	t.Run("missing file", func(t *testing.T) {
		rec := post(t, "", "", nil)
		requireMessage(t, rec, http.StatusBadRequest, "No file uploaded")
	})

	t.Run("too large", func(t *testing.T) {
		rec := post(t, UploadField, "big.png", bytes.Repeat([]byte("x"), 2048))
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())
	})

	t.Run("no directory listing", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/images/", "", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProfile(t *testing.T) {
	t.Run("password confirmation must match", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")

		rec := s.do(t, http.MethodPut, "/api/users/profile", sess.Token, shopsdk.ProfileUpdateRequest{
			Password: "new-password", ConfirmPassword: "other-password",
		})
		requireMessage(t, rec, http.StatusBadRequest, "Passwords do not match")
	})

	t.Run("taken email is a conflict", func(t *testing.T) {
		s := newTestServer(t, "")
		s.signUp(t, "taken@example.com")
		sess := s.signUp(t, "ada@example.com")

		rec := s.do(t, http.MethodPut, "/api/users/profile", sess.Token, shopsdk.ProfileUpdateRequest{Email: "taken@example.com"})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("update returns a fresh session", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")

		rec := s.do(t, http.MethodPut, "/api/users/profile", sess.Token, shopsdk.ProfileUpdateRequest{Name: "Countess"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[shopsdk.ProfileUpdateResponse](t, rec)
		require.Equal(t, "Countess", resp.Name)
		require.Equal(t, "ada@example.com", resp.Email)
		require.Nil(t, resp.TwoFactorSetup)

		claims, err := s.keys.Verify(resp.Token)
		require.NoError(t, err)
		require.Equal(t, "Countess", claims.Name)
	})

	t.Run("enable2FA issues a pending secret", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")
		enable := true

		rec := s.do(t, http.MethodPut, "/api/users/profile", sess.Token, shopsdk.ProfileUpdateRequest{Enable2FA: &enable})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decode[shopsdk.ProfileUpdateResponse](t, rec)
		require.NotNil(t, resp.TwoFactorSetup)
		require.NotEmpty(t, resp.TwoFactorSetup.Secret)
		require.Contains(t, resp.TwoFactorSetup.OTPAuthURL, "otpauth://totp/")
		require.False(t, resp.TwoFactorEnabled)

		rec = s.do(t, http.MethodPost, "/api/users/2fa/confirm", sess.Token,
			shopsdk.TwoFactorCodeRequest{Code: totpCode(t, resp.TwoFactorSetup.Secret)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("enable2FA false turns 2FA off", func(t *testing.T) {
		s := newTestServer(t, "")
		sess := s.signUp(t, "ada@example.com")
		s.enableTwoFactor(t, sess.Token)
		disable := false

		rec := s.do(t, http.MethodPut, "/api/users/profile", sess.Token, shopsdk.ProfileUpdateRequest{Enable2FA: &disable})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.False(t, decode[shopsdk.ProfileUpdateResponse](t, rec).TwoFactorEnabled)

		rec = s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{Email: "ada@example.com", Password: "password123"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.False(t, decode[shopsdk.SignInResponse](t, rec).Require2FA)
	})
}

func TestTwoFactorEndpoints(t *testing.T) {
	s := newTestServer(t, "")
	sess := s.signUp(t, "ada@example.com")

	t.Run("confirm before enroll", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users/2fa/confirm", sess.Token, shopsdk.TwoFactorCodeRequest{Code: "123456"})
		requireMessage(t, rec, http.StatusBadRequest, "Two-factor enrolment not started")
	})

	secret, _ := s.enableTwoFactor(t, sess.Token)

	t.Run("enroll twice is a conflict", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users/2fa/enroll", sess.Token, nil)
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("regenerate backup codes", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users/2fa/backup-codes", sess.Token, shopsdk.TwoFactorCodeRequest{Code: badCode(t, secret)})
		requireMessage(t, rec, http.StatusBadRequest, "Invalid code")

		rec = s.do(t, http.MethodPost, "/api/users/2fa/backup-codes", sess.Token, shopsdk.TwoFactorCodeRequest{Code: totpCode(t, secret)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Len(t, decode[shopsdk.BackupCodesResponse](t, rec).BackupCodes, 10)
	})

	t.Run("disable", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/api/users/2fa", sess.Token, shopsdk.TwoFactorCodeRequest{})
		requireMessage(t, rec, http.StatusBadRequest, "Invalid code")

		rec = s.do(t, http.MethodDelete, "/api/users/2fa", sess.Token, shopsdk.TwoFactorCodeRequest{Code: totpCode(t, secret)})
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		rec = s.do(t, http.MethodDelete, "/api/users/2fa", sess.Token, shopsdk.TwoFactorCodeRequest{Code: totpCode(t, secret)})
		requireMessage(t, rec, http.StatusBadRequest, "Two-factor authentication not enabled")
	})
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t, "")

	t.Run("livez", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/livez", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		h := decode[shopsdk.HealthResponse](t, rec)
		require.Equal(t, "ok", h.Status)
		require.Equal(t, "test", h.Version)
	})

	t.Run("readyz", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		h := decode[shopsdk.HealthResponse](t, rec)
		require.NotNil(t, h.Checks)
		require.Equal(t, "ok", h.Checks.Database)
		require.Equal(t, "ok", h.Checks.Signer)
	})

	t.Run("jwks", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/.well-known/jwks.json", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decode[shopsdk.JWKSResponse](t, rec).Keys, 2)
	})

	t.Run("readyz reports a closed database", func(t *testing.T) {
		require.NoError(t, s.st.Close())
		rec := s.do(t, http.MethodGet, "/readyz", "", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "degraded", decode[shopsdk.HealthResponse](t, rec).Status)
	})
}

func TestSignInRateLimit(t *testing.T) {
	s := newTestServer(t, "")
	req := shopsdk.SignInRequest{Email: "ada@example.com", Password: "wrong"}

	for range 5 {
		require.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/users/signin", "", req).Code)
	}
	rec := s.do(t, http.MethodPost, "/api/users/signin", "", req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	// A different account from the same client has its own bucket.
	other := s.do(t, http.MethodPost, "/api/users/signin", "", shopsdk.SignInRequest{Email: "bob@example.com", Password: "wrong"})
	require.Equal(t, http.StatusUnauthorized, other.Code)
}
