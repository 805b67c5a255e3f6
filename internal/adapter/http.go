package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"github.com/MKhiriev/secure-vault/models"
	"github.com/go-resty/resty/v2"
)

const (
	pathSignup      = "/api/auth/signup"
	pathLogin       = "/api/auth/login"
	path2FASetup    = "/api/auth/2fa/setup"
	path2FAVerify   = "/api/auth/2fa/verify"
	pathVault       = "/api/vault"
	pathVaultItem   = "/api/vault/{id}"
	pathVaultImport = "/api/vault/import"
	pathVersion     = "/api/version"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter returns the REST implementation of [ServerAdapter].
// A bare host:port address is treated as http.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("address must include a host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Signup(ctx context.Context, req models.SignupRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(pathSignup)
	if err != nil {
		return fmt.Errorf("%w: signup request: %w", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var out models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post(pathLogin)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: login request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return out, nil
}

func (h *httpServerAdapter) ListVault(ctx context.Context) ([]models.VaultRecord, error) {
	var records []models.VaultRecord

	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := req.SetResult(&records).Get(pathVault)
	if err != nil {
		return nil, fmt.Errorf("%w: list vault request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if records == nil {
		records = []models.VaultRecord{}
	}
	return records, nil
}

func (h *httpServerAdapter) CreateVaultItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	var created models.VaultRecord

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.VaultRecord{}, err
	}
	resp, err := req.SetBody(record).SetResult(&created).Post(pathVault)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: create vault item request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return created, nil
}

func (h *httpServerAdapter) UpdateVaultItem(ctx context.Context, update models.VaultRecordUpdate) (models.VaultRecord, error) {
	var updated models.VaultRecord

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.VaultRecord{}, err
	}
	resp, err := req.
		SetPathParam("id", strconv.FormatInt(update.ID, 10)).
		SetBody(update).
		SetResult(&updated).
		Put(pathVaultItem)
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: update vault item request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return updated, nil
}

func (h *httpServerAdapter) DeleteVaultItem(ctx context.Context, id int64) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	resp, err := req.
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(pathVaultItem)
	if err != nil {
		return fmt.Errorf("%w: delete vault item request: %w", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ImportVault(ctx context.Context, records []models.VaultRecord) (models.ImportResponse, error) {
	var out models.ImportResponse

	if records == nil {
		records = []models.VaultRecord{}
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.ImportResponse{}, err
	}
	resp, err := req.
		SetBody(models.ImportRequest{Items: records}).
		SetResult(&out).
		Post(pathVaultImport)
	if err != nil {
		return models.ImportResponse{}, fmt.Errorf("%w: import request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ImportResponse{}, err
	}

	return out, nil
}

func (h *httpServerAdapter) SetupTwoFactor(ctx context.Context) (models.TwoFactorSetupResponse, error) {
	var out models.TwoFactorSetupResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.TwoFactorSetupResponse{}, err
	}
	resp, err := req.SetResult(&out).Post(path2FASetup)
	if err != nil {
		return models.TwoFactorSetupResponse{}, fmt.Errorf("%w: 2fa setup request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TwoFactorSetupResponse{}, err
	}

	return out, nil
}

func (h *httpServerAdapter) VerifyTwoFactor(ctx context.Context, code string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	resp, err := req.SetBody(models.TwoFactorVerifyRequest{Token: code}).Post(path2FAVerify)
	if err != nil {
		return fmt.Errorf("%w: 2fa verify request: %w", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var out models.VersionResponse

	resp, err := h.client.R().SetContext(ctx).SetResult(&out).Get(pathVersion)
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("%w: version request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionResponse{}, err
	}

	return out, nil
}

// authedRequest returns a request carrying the bearer token, or ErrNoToken
// before Login.
func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}
