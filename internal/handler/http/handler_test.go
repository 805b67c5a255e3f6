package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "valid-token"

// fakeAuthService is a hand-rolled AuthService. Unset funcs panic so a test
// notices an unexpected call.
type fakeAuthService struct {
	signup          func(ctx context.Context, req models.SignupRequest) (models.User, error)
	login           func(ctx context.Context, req models.LoginRequest) (models.User, error)
	setupTwoFactor  func(ctx context.Context, userID int64) (models.TwoFactorSetupResponse, error)
	verifyTwoFactor func(ctx context.Context, userID int64, code string) error
}

func (f *fakeAuthService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	return f.signup(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return f.login(ctx, req)
}

func (f *fakeAuthService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	return models.Token{SignedString: "signed-for-" + user.Email, UserID: user.UserID}, nil
}

func (f *fakeAuthService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	if tokenString != testToken {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{UserID: 7}, nil
}

func (f *fakeAuthService) SetupTwoFactor(ctx context.Context, userID int64) (models.TwoFactorSetupResponse, error) {
	return f.setupTwoFactor(ctx, userID)
}

func (f *fakeAuthService) VerifyTwoFactor(ctx context.Context, userID int64, code string) error {
	return f.verifyTwoFactor(ctx, userID, code)
}

type fakeVaultService struct {
	list   func(ctx context.Context, userID int64) ([]models.VaultRecord, error)
	create func(ctx context.Context, userID int64, record models.VaultRecord) (models.VaultRecord, error)
	update func(ctx context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error)
	delete func(ctx context.Context, userID, id int64) error
	imp    func(ctx context.Context, userID int64, records []models.VaultRecord) (int, error)
}

func (f *fakeVaultService) List(ctx context.Context, userID int64) ([]models.VaultRecord, error) {
	return f.list(ctx, userID)
}

func (f *fakeVaultService) Create(ctx context.Context, userID int64, record models.VaultRecord) (models.VaultRecord, error) {
	return f.create(ctx, userID, record)
}

func (f *fakeVaultService) Update(ctx context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error) {
	return f.update(ctx, update)
}

func (f *fakeVaultService) Delete(ctx context.Context, userID, id int64) error {
	return f.delete(ctx, userID, id)
}

func (f *fakeVaultService) Import(ctx context.Context, userID int64, records []models.VaultRecord) (int, error) {
	return f.imp(ctx, userID, records)
}

type fakeAppInfoService struct{}

func (fakeAppInfoService) GetAppVersion(context.Context) models.VersionResponse {
	return models.VersionResponse{Version: "v1.2.3", Commit: "abc123"}
}

func testServerConfig() config.Server {
	return config.Server{
		HTTPAddress:    ":0",
		RequestTimeout: 5 * time.Second,
		LoginRateLimit: 1000,
		LoginBurst:     1000,
	}
}

func newTestHandler(auth *fakeAuthService, vault *fakeVaultService, cfg config.Server) http.Handler {
	if auth == nil {
		auth = &fakeAuthService{}
	}
	if vault == nil {
		vault = &fakeVaultService{}
	}
	services := &service.Services{
		AuthService:    auth,
		VaultService:   vault,
		AppInfoService: fakeAppInfoService{},
	}
	return NewHandler(services, cfg, logger.Nop()).Init()
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestVersion(t *testing.T) {
	h := newTestHandler(nil, nil, testServerConfig())

	rec := doRequest(t, h, http.MethodGet, "/api/version", nil, false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	var resp models.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "v1.2.3", resp.Version)
	assert.Equal(t, "abc123", resp.Commit)
}

func TestTraceIDIsEchoed(t *testing.T) {
	h := newTestHandler(nil, nil, testServerConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-from-client")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "trace-from-client", rec.Header().Get(traceIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	h := newTestHandler(nil, nil, testServerConfig())

	rec := doRequest(t, h, http.MethodGet, "/api/nope", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", errorBody(t, rec))

	rec = doRequest(t, h, http.MethodPatch, "/api/vault/1", nil, true)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "created", body: models.SignupRequest{Email: "alice@example.com", Password: "Tr0ub4dor&3"}, wantStatus: http.StatusCreated},
		{name: "short password", body: models.SignupRequest{Email: "alice@example.com", Password: "x"}, err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest, wantMsg: "invalid data provided"},
		{name: "email taken", body: models.SignupRequest{Email: "alice@example.com", Password: "Tr0ub4dor&3"}, err: errEmailTaken, wantStatus: http.StatusConflict, wantMsg: "user with this email already exists"},
		{name: "broken json", body: "{", wantStatus: http.StatusBadRequest, wantMsg: "invalid JSON was passed"},
		{name: "store down", body: models.SignupRequest{Email: "alice@example.com", Password: "Tr0ub4dor&3"}, err: assert.AnError, wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{
				signup: func(_ context.Context, req models.SignupRequest) (models.User, error) {
					if tt.err != nil {
						return models.User{}, tt.err
					}
					return models.User{UserID: 1, Email: req.Email}, nil
				},
			}
			rec := doRequest(t, newTestHandler(auth, nil, testServerConfig()), http.MethodPost, "/api/auth/signup", tt.body, false)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorBody(t, rec))
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		auth := &fakeAuthService{
			login: func(_ context.Context, req models.LoginRequest) (models.User, error) {
				assert.Equal(t, "123456", req.TOTP)
				return models.User{UserID: 7, Email: req.Email, KDFSalt: "c2FsdA==", KDFIterations: 600000, TwoFactorEnabled: true}, nil
			},
		}
		body := models.LoginRequest{Email: "alice@example.com", Password: "Tr0ub4dor&3", TOTP: "123456"}
		rec := doRequest(t, newTestHandler(auth, nil, testServerConfig()), http.MethodPost, "/api/auth/login", body, false)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Bearer signed-for-alice@example.com", rec.Header().Get("Authorization"))

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.LoginResponse{
			UserID: 7, Email: "alice@example.com", KDFSalt: "c2FsdA==", KDFIterations: 600000, TwoFactorEnabled: true,
		}, resp)
	})

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "wrong password", err: service.ErrWrongPassword, wantMsg: "invalid email or password"},
		{name: "code required", err: service.ErrTwoFactorRequired, wantMsg: "two-factor code required"},
		{name: "wrong code", err: service.ErrInvalidTwoFactorCode, wantMsg: "invalid two-factor code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{
				login: func(context.Context, models.LoginRequest) (models.User, error) { return models.User{}, tt.err },
			}
			body := models.LoginRequest{Email: "alice@example.com", Password: "nope"}
			rec := doRequest(t, newTestHandler(auth, nil, testServerConfig()), http.MethodPost, "/api/auth/login", body, false)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantMsg, errorBody(t, rec))
			assert.Empty(t, rec.Header().Get("Authorization"))
		})
	}
}

func TestLoginRateLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.LoginRateLimit = 0.001
	cfg.LoginBurst = 2

	auth := &fakeAuthService{
		login: func(context.Context, models.LoginRequest) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	}
	h := newTestHandler(auth, nil, cfg)
	body := models.LoginRequest{Email: "alice@example.com", Password: "guess"}

	for i := 0; i < cfg.LoginBurst; i++ {
		rec := doRequest(t, h, http.MethodPost, "/api/auth/login", body, false)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := doRequest(t, h, http.MethodPost, "/api/auth/login", body, false)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "too many requests, try again later", errorBody(t, rec))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// vault routes are not throttled
	vault := &fakeVaultService{list: func(context.Context, int64) ([]models.VaultRecord, error) { return nil, nil }}
	h = newTestHandler(auth, vault, cfg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(t, h, http.MethodGet, "/api/vault/", nil, true).Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	vault := &fakeVaultService{
		list: func(_ context.Context, userID int64) ([]models.VaultRecord, error) {
			assert.Equal(t, int64(7), userID)
			return nil, nil
		},
	}
	h := newTestHandler(nil, vault, testServerConfig())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantMsg: "unauthorized"},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantMsg: "token is expired or invalid"},
		{name: "bad token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantMsg: "token is expired or invalid"},
		{name: "valid", header: "Bearer " + testToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/vault/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorBody(t, rec))
			}
		})
	}
}

func TestTwoFactor(t *testing.T) {
	auth := &fakeAuthService{
		setupTwoFactor: func(_ context.Context, userID int64) (models.TwoFactorSetupResponse, error) {
			assert.Equal(t, int64(7), userID)
			return models.TwoFactorSetupResponse{Secret: "JBSWY3DPEHPK3PXP", OTPAuthURL: "otpauth://totp/x"}, nil
		},
		verifyTwoFactor: func(_ context.Context, _ int64, code string) error {
			switch code {
			case "123456":
				return nil
			case "000000":
				return service.ErrInvalidTwoFactorCode
			default:
				return service.ErrTwoFactorNotSetUp
			}
		},
	}
	h := newTestHandler(auth, nil, testServerConfig())

	rec := doRequest(t, h, http.MethodPost, "/api/auth/2fa/setup", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var setup models.TwoFactorSetupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &setup))
	assert.Equal(t, "JBSWY3DPEHPK3PXP", setup.Secret)

	assert.Equal(t, http.StatusUnauthorized, doRequest(t, h, http.MethodPost, "/api/auth/2fa/setup", nil, false).Code)

	rec = doRequest(t, h, http.MethodPost, "/api/auth/2fa/verify", models.TwoFactorVerifyRequest{Token: "123456"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "two-factor authentication enabled", msg.Message)

	rec = doRequest(t, h, http.MethodPost, "/api/auth/2fa/verify", models.TwoFactorVerifyRequest{Token: "000000"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid two-factor code", errorBody(t, rec))

	rec = doRequest(t, h, http.MethodPost, "/api/auth/2fa/verify", models.TwoFactorVerifyRequest{Token: "111111"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "two-factor authentication is not set up", errorBody(t, rec))
}

func TestListVault(t *testing.T) {
	t.Run("empty vault is an empty array", func(t *testing.T) {
		vault := &fakeVaultService{list: func(context.Context, int64) ([]models.VaultRecord, error) { return nil, nil }}
		rec := doRequest(t, newTestHandler(nil, vault, testServerConfig()), http.MethodGet, "/api/vault/", nil, true)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("records", func(t *testing.T) {
		vault := &fakeVaultService{list: func(context.Context, int64) ([]models.VaultRecord, error) {
			return []models.VaultRecord{{ID: 1, UserID: 7, Title: "t1"}, {ID: 2, UserID: 7, Title: "t2"}}, nil
		}}
		rec := doRequest(t, newTestHandler(nil, vault, testServerConfig()), http.MethodGet, "/api/vault/", nil, true)

		require.Equal(t, http.StatusOK, rec.Code)
		var records []models.VaultRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, models.CipherString("t2"), records[1].Title)
	})
}

func TestCreateVaultItem(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	vault := &fakeVaultService{
		create: func(_ context.Context, userID int64, record models.VaultRecord) (models.VaultRecord, error) {
			if record.Title == "" {
				return models.VaultRecord{}, service.ErrInvalidDataProvided
			}
			record.ID = 10
			record.UserID = userID
			record.CreatedAt = &now
			record.UpdatedAt = &now
			return record, nil
		},
	}
	h := newTestHandler(nil, vault, testServerConfig())

	rec := doRequest(t, h, http.MethodPost, "/api/vault/", models.VaultRecord{Title: "t", Username: "u", Password: "p"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.VaultRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, int64(7), created.UserID)

	rec = doRequest(t, h, http.MethodPost, "/api/vault/", models.VaultRecord{Username: "u"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateVaultItem(t *testing.T) {
	vault := &fakeVaultService{
		update: func(_ context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error) {
			if update.ID == 404 {
				return models.VaultRecord{}, errItemMissing
			}
			assert.Equal(t, int64(7), update.UserID)
			require.NotNil(t, update.Notes)
			assert.Nil(t, update.Title)
			return models.VaultRecord{ID: update.ID, UserID: update.UserID, Notes: *update.Notes}, nil
		},
	}
	h := newTestHandler(nil, vault, testServerConfig())

	rec := doRequest(t, h, http.MethodPut, "/api/vault/3", `{"notes":"n2"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.VaultRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, int64(3), updated.ID)
	assert.Equal(t, models.CipherString("n2"), updated.Notes)

	rec = doRequest(t, h, http.MethodPut, "/api/vault/404", `{"notes":"n2"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "item not found", errorBody(t, rec))

	rec = doRequest(t, h, http.MethodPut, "/api/vault/abc", `{"notes":"n2"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteVaultItem(t *testing.T) {
	vault := &fakeVaultService{
		delete: func(_ context.Context, userID, id int64) error {
			assert.Equal(t, int64(7), userID)
			if id == 5 {
				return nil
			}
			return errItemMissing
		},
	}
	h := newTestHandler(nil, vault, testServerConfig())

	rec := doRequest(t, h, http.MethodDelete, "/api/vault/5", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(t, h, http.MethodDelete, "/api/vault/6", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, h, http.MethodDelete, "/api/vault/0", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportVault(t *testing.T) {
	vault := &fakeVaultService{
		imp: func(_ context.Context, userID int64, records []models.VaultRecord) (int, error) {
			assert.Equal(t, int64(7), userID)
			return len(records), nil
		},
	}
	h := newTestHandler(nil, vault, testServerConfig())

	body := `{"items":[{"_id":"65f1c2d3e4a5b6c7d8e9f0a1","title":"a","username":"b","password":"c"},{"title":"d","username":"e","password":"f"}]}`
	rec := doRequest(t, h, http.MethodPost, "/api/vault/import", body, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "2 items imported successfully", resp.Message)

	for _, bad := range []string{`{"items":{"title":"a"}}`, `{}`, `{"items":"x"}`} {
		rec = doRequest(t, h, http.MethodPost, "/api/vault/import", bad, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
		assert.Equal(t, "invalid data format, expected an array of items", errorBody(t, rec))
	}
}

func TestGzipRequestBody(t *testing.T) {
	auth := &fakeAuthService{
		signup: func(_ context.Context, req models.SignupRequest) (models.User, error) {
			assert.Equal(t, "alice@example.com", req.Email)
			return models.User{UserID: 1}, nil
		},
	}
	h := newTestHandler(auth, nil, testServerConfig())

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"email":"alice@example.com","password":"Tr0ub4dor&3"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGzipResponse(t *testing.T) {
	vault := &fakeVaultService{list: func(context.Context, int64) ([]models.VaultRecord, error) {
		return []models.VaultRecord{{ID: 1, Title: "t"}}, nil
	}}
	h := newTestHandler(nil, vault, testServerConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/vault/", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title":"t"`)
}
