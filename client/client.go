// Package client talks JSON-over-HTTP to the checklist backend, local or
// remote. Every GET is cache-defeated: rosters change between inspections
// and a cached list would let an operator pick a retired asset.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fundicaobk/equipcheck/config"
	"github.com/fundicaobk/equipcheck/models"
)

// DefaultTimeout bounds every call. Expiry surfaces as KindTimeout.
const DefaultTimeout = 10 * time.Second

// HealthStatus is the liveness probe response.
type HealthStatus struct {
	Server string `json:"server,omitempty"`
}

// EmailRequest is the payload for report dispatch. The core only forwards
// it; rendering and SMTP live behind the backend.
type EmailRequest struct {
	Email         string `json:"email"`
	Subject       string `json:"subject"`
	PDFBase64     string `json:"pdfBase64,omitempty"`
	EquipmentName string `json:"equipmentName"`
	OperatorName  string `json:"operatorName"`
	Sector        string `json:"sector"`
	Date          string `json:"date"`
}

// Client is a stateless transport. The active endpoint is resolved from the
// settings loader on every call, never cached, so a mid-session settings
// change redirects the next request.
type Client struct {
	http *resty.Client
	cfg  config.Loader
	log  *zap.Logger
}

// Option adjusts a Client at construction.
type Option func(*Client)

// WithTimeout overrides the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// New builds a client over the given settings loader.
func New(cfg config.Loader, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		http: resty.New().SetTimeout(DefaultTimeout),
		cfg:  cfg,
		log:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint() (string, error) {
	settings, err := c.cfg()
	if err != nil {
		return "", err
	}
	// The networked base applies even when the orchestrator is in embedded
	// mode; direct callers (health probe, sync) still reach the backend.
	return settings.NetworkEndpoint(), nil
}

// request returns a cache-defeated request: unique t/r query values plus
// no-cache headers make every call distinct to the server and to any
// intermediary.
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetQueryParam("t", strconv.FormatInt(time.Now().UnixMilli(), 10)).
		SetQueryParam("r", uuid.NewString()).
		SetHeader("Cache-Control", "no-cache, no-store, must-revalidate").
		SetHeader("Pragma", "no-cache").
		SetHeader("Expires", "0")
}

func statusError(op string, resp *resty.Response) *RemoteError {
	return &RemoteError{
		Kind:    KindStatus,
		Status:  resp.StatusCode(),
		Message: op + " returned error status",
		Detail:  string(resp.Body()),
	}
}

// getList fetches path and decodes the body, which must be a JSON array.
func (c *Client) getList(ctx context.Context, op, path string, out any) error {
	endpoint, err := c.endpoint()
	if err != nil {
		return err
	}
	resp, err := c.request(ctx).Get(endpoint + path)
	if err != nil {
		return classify(op, err)
	}
	if resp.IsError() {
		return statusError(op, resp)
	}
	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || body[0] != '[' {
		return &RemoteError{Kind: KindBadShape, Message: op + " returned a non-array payload", Detail: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RemoteError{Kind: KindBadShape, Message: op + " returned an undecodable array", Detail: err.Error()}
	}
	return nil
}

// ListEquipments fetches the equipment catalog.
func (c *Client) ListEquipments(ctx context.Context) ([]models.Equipment, error) {
	var out []models.Equipment
	if err := c.getList(ctx, "list equipments", "/equipments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOperators fetches the operator roster in storage order.
func (c *Client) ListOperators(ctx context.Context) ([]models.Operator, error) {
	var out []models.Operator
	if err := c.getList(ctx, "list operators", "/operators", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSectors fetches the sector list.
func (c *Client) ListSectors(ctx context.Context) ([]models.Sector, error) {
	var out []models.Sector
	if err := c.getList(ctx, "list sectors", "/sectors", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSubmissionHistory fetches the submission read model.
func (c *Client) ListSubmissionHistory(ctx context.Context) ([]models.ChecklistHistory, error) {
	var out []models.ChecklistHistory
	if err := c.getList(ctx, "list history", "/checklists/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, body, out any) error {
	endpoint, err := c.endpoint()
	if err != nil {
		return err
	}
	req := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(body)
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Post(endpoint + path)
	if err != nil {
		return classify(op, err)
	}
	if resp.IsError() {
		return statusError(op, resp)
	}
	return nil
}

// CreateSubmission stores a completed checklist and returns the record with
// the server-assigned id. On failure the caller owns the local-history
// durability fallback.
func (c *Client) CreateSubmission(ctx context.Context, checklist *models.Checklist) (*models.Checklist, error) {
	var created models.Checklist
	if err := c.postJSON(ctx, "create submission", "/checklists", checklist, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// PushUnsyncedHistory bulk-uploads locally buffered records. An empty
// buffer returns immediately without touching the network.
func (c *Client) PushUnsyncedHistory(ctx context.Context, records []models.ChecklistHistory) error {
	if len(records) == 0 {
		return nil
	}
	payload := map[string][]models.ChecklistHistory{"checklists": records}
	return c.postJSON(ctx, "sync history", "/checklists/sync", payload, nil)
}

// HealthCheck probes the backend. It shares the client's timeout and
// cache-defeat configuration but is used by status display only.
func (c *Client) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}
	var status HealthStatus
	resp, err := c.request(ctx).SetResult(&status).Get(endpoint + "/health")
	if err != nil {
		return nil, classify("health check", err)
	}
	if resp.IsError() {
		return nil, statusError("health check", resp)
	}
	return &status, nil
}

// TestConnection forwards the advanced database parameters to the
// backend's own connection test.
func (c *Client) TestConnection(ctx context.Context, db config.Database) error {
	return c.postJSON(ctx, "test connection", "/test-connection", db, nil)
}

// SendEmail asks the backend to dispatch a rendered report.
func (c *Client) SendEmail(ctx context.Context, req EmailRequest) error {
	return c.postJSON(ctx, "send email", "/send-email", req, nil)
}

// AddEquipment creates a catalog entry.
func (c *Client) AddEquipment(ctx context.Context, e models.Equipment) error {
	return c.postJSON(ctx, "add equipment", "/equipments", e, nil)
}

// UpdateEquipment replaces a catalog entry by id.
func (c *Client) UpdateEquipment(ctx context.Context, e models.Equipment) error {
	return c.putJSON(ctx, "update equipment", "/equipments/"+e.ID, e)
}

// DeleteEquipment removes a catalog entry by id.
func (c *Client) DeleteEquipment(ctx context.Context, id string) error {
	return c.delete(ctx, "delete equipment", "/equipments/"+id)
}

// AddOperator creates a roster entry.
func (c *Client) AddOperator(ctx context.Context, o models.Operator) error {
	return c.postJSON(ctx, "add operator", "/operators", o, nil)
}

// UpdateOperator replaces a roster entry by id.
func (c *Client) UpdateOperator(ctx context.Context, o models.Operator) error {
	return c.putJSON(ctx, "update operator", "/operators/"+o.ID, o)
}

// DeleteOperator removes a roster entry by id.
func (c *Client) DeleteOperator(ctx context.Context, id string) error {
	return c.delete(ctx, "delete operator", "/operators/"+id)
}

// AddSector creates a sector.
func (c *Client) AddSector(ctx context.Context, s models.Sector) error {
	return c.postJSON(ctx, "add sector", "/sectors", s, nil)
}

// UpdateSector replaces a sector by id.
func (c *Client) UpdateSector(ctx context.Context, s models.Sector) error {
	return c.putJSON(ctx, "update sector", "/sectors/"+s.ID, s)
}

// DeleteSector removes a sector by id.
func (c *Client) DeleteSector(ctx context.Context, id string) error {
	return c.delete(ctx, "delete sector", "/sectors/"+id)
}

func (c *Client) putJSON(ctx context.Context, op, path string, body any) error {
	endpoint, err := c.endpoint()
	if err != nil {
		return err
	}
	resp, err := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(body).Put(endpoint + path)
	if err != nil {
		return classify(op, err)
	}
	if resp.IsError() {
		return statusError(op, resp)
	}
	return nil
}

func (c *Client) delete(ctx context.Context, op, path string) error {
	endpoint, err := c.endpoint()
	if err != nil {
		return err
	}
	resp, err := c.request(ctx).Delete(endpoint + path)
	if err != nil {
		return classify(op, err)
	}
	if resp.IsError() {
		return statusError(op, resp)
	}
	return nil
}
