package reconcile

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"easy2go/internal/api"
	"easy2go/internal/logger"
)

// Service exposes the backend's reconcile operations as typed calls.
// Every call is a single attempt; failures are terminal for that action
// and the user repeats it manually.
type Service struct {
	client *api.Client
	log    zerolog.Logger
}

// NewService wraps an API client.
func NewService(client *api.Client) *Service {
	return &Service{
		client: client,
		log:    logger.WithComponent("reconcile"),
	}
}

// Login exchanges credentials for a token. Credentials are validated
// locally first; no request is made when they are blank.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if err := ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	body := map[string]string{"username": username, "password": password}
	resp, err := s.client.Do(ctx, http.MethodPost, "/v1/auth/login", nil, body)
	if err != nil {
		return nil, api.WrapRequestError("Login", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var result LoginResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, api.WrapRequestError("Login", err)
	}
	if result.Role == "" {
		result.Role = "customer"
	}

	s.log.Info().Str("username", username).Str("role", result.Role).Msg("Login succeeded")
	return &result, nil
}

// List fetches the document summaries for a customer.
func (s *Service) List(ctx context.Context, customerID string) ([]Summary, error) {
	query := url.Values{}
	if customerID != "" {
		query.Set("customer_id", customerID)
	}

	resp, err := s.client.Do(ctx, http.MethodGet, "/v1/reconciles", query, nil)
	if err != nil {
		return nil, api.WrapRequestError("List", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var result ListResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, api.WrapRequestError("List", err)
	}
	return result.Items, nil
}

// Get fetches one document by id.
func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	if id == "" {
		return nil, api.ErrMissingID
	}

	resp, err := s.client.Do(ctx, http.MethodGet, "/v1/reconciles/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, api.WrapRequestError("Get", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var doc Document
	if err := resp.DecodeJSON(&doc); err != nil {
		return nil, api.WrapRequestError("Get", err)
	}
	return &doc, nil
}

// Create submits a validated form as a new document and returns the
// server's representation, including the assigned id.
func (s *Service) Create(ctx context.Context, f Form) (*Document, error) {
	if err := ValidateForm(f); err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, http.MethodPost, "/v1/reconciles", nil, f.Payload())
	if err != nil {
		return nil, api.WrapRequestError("Create", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var doc Document
	if err := resp.DecodeJSON(&doc); err != nil {
		return nil, api.WrapRequestError("Create", err)
	}

	s.log.Info().Str("id", doc.ID).Str("invoice_no", doc.InvoiceNo).Msg("Document created")
	return &doc, nil
}

// Save sends the full replacement payload for an edited document. The
// returned representation is authoritative; callers discard their local
// snapshot in its favor.
func (s *Service) Save(ctx context.Context, id string, f Form) (*Document, error) {
	if id == "" {
		return nil, api.ErrMissingID
	}
	if err := ValidateForm(f); err != nil {
		return nil, err
	}
	return s.patch(ctx, "Save", id, f.Payload())
}

// SetEditable toggles the document lock via a partial PATCH carrying only
// that field. Admin-only; the backend enforces it too.
func (s *Service) SetEditable(ctx context.Context, id string, editable bool) (*Document, error) {
	if id == "" {
		return nil, api.ErrMissingID
	}
	return s.patch(ctx, "SetEditable", id, map[string]bool{"editable": editable})
}

func (s *Service) patch(ctx context.Context, op, id string, payload any) (*Document, error) {
	resp, err := s.client.Do(ctx, http.MethodPatch, "/v1/reconciles/"+url.PathEscape(id), nil, payload)
	if err != nil {
		return nil, api.WrapRequestError(op, err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var doc Document
	if err := resp.DecodeJSON(&doc); err != nil {
		return nil, api.WrapRequestError(op, err)
	}
	return &doc, nil
}

// Pics lists a document's attachment paths.
func (s *Service) Pics(ctx context.Context, id string) ([]string, error) {
	if id == "" {
		return nil, api.ErrMissingID
	}

	resp, err := s.client.Do(ctx, http.MethodGet, picsPath(id), nil, nil)
	if err != nil {
		return nil, api.WrapRequestError("Pics", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var result PicsResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, api.WrapRequestError("Pics", err)
	}
	return result.Pics, nil
}

// UploadPic attaches one image and returns the updated path list. When the
// upload response lacks the list, it falls back to a full re-fetch.
func (s *Service) UploadPic(ctx context.Context, id, filename string, r io.Reader) ([]string, error) {
	if id == "" {
		return nil, api.ErrMissingID
	}

	resp, err := s.client.Upload(ctx, picsPath(id), "file", filename, r)
	if err != nil {
		return nil, api.WrapRequestError("UploadPic", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var result PicsResult
	if err := resp.DecodeJSON(&result); err != nil || result.Pics == nil {
		s.log.Debug().Str("id", id).Msg("Upload response lacked pics list, re-fetching")
		return s.Pics(ctx, id)
	}
	return result.Pics, nil
}

// DeletePic removes one attachment by relative path and returns the
// server's post-delete path list. Confirmation happens at the call site,
// before any request.
func (s *Service) DeletePic(ctx context.Context, id, relPath string) ([]string, error) {
	if id == "" {
		return nil, api.ErrMissingID
	}

	query := url.Values{}
	query.Set("rel_path", relPath)

	resp, err := s.client.Do(ctx, http.MethodDelete, picsPath(id), query, nil)
	if err != nil {
		return nil, api.WrapRequestError("DeletePic", err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}

	var result PicsResult
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, api.WrapRequestError("DeletePic", err)
	}
	return result.Pics, nil
}

func picsPath(id string) string {
	return "/v1/reconciles/" + url.PathEscape(id) + "/pics"
}
