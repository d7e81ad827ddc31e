package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// HTTPTransportConfig configures an HTTPTransport.
type HTTPTransportConfig struct {
	// Endpoint is the registry service's base URL, e.g.
	// "https://registry.example.com".
	Endpoint string

	// Username and Password enable HTTP basic auth when Username is set.
	Username string
	Password string

	// Timeout bounds every HTTP request. Defaults to 10s.
	Timeout time.Duration
}

// HTTPTransport is a Transport that speaks to the registry service over a
// JSON/HTTP RPC surface: one POST per gateway operation, named after the
// operation itself.
type HTTPTransport struct {
	endpoint   string
	httpClient *http.Client
	username   string
	password   string
}

// NewHTTPTransport constructs an HTTPTransport. It does not contact the
// registry; connectivity is verified on first call.
func NewHTTPTransport(cfg HTTPTransportConfig) (*HTTPTransport, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("registry: HTTPTransportConfig.Endpoint is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &HTTPTransport{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		username:   cfg.Username,
		password:   cfg.Password,
	}, nil
}

type wireSchemaVersion struct {
	SVID       string `json:"svid"`
	Status     string `json:"status"`
	Name       string `json:"name"`
	Format     string `json:"format"`
	Definition string `json:"definition"`
}

func (t *HTTPTransport) GetSchemaVersionByDefinition(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error) {
	return t.call(ctx, "get_schema_version_by_definition", map[string]interface{}{
		"registry_name": registryName,
		"format":        s.Format(),
		"name":          s.Name(),
		"definition":    s.Definition(),
	})
}

func (t *HTTPTransport) GetSchemaVersionByID(ctx context.Context, registryName string, svid SVID) (*SchemaVersion, error) {
	return t.call(ctx, "get_schema_version_by_id", map[string]interface{}{
		"registry_name": registryName,
		"svid":          svid.String(),
	})
}

func (t *HTTPTransport) CreateSchema(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error) {
	return t.call(ctx, "create_schema", map[string]interface{}{
		"registry_name": registryName,
		"format":        s.Format(),
		"name":          s.Name(),
		"definition":    s.Definition(),
		"compatibility": s.Compatibility(),
	})
}

func (t *HTTPTransport) RegisterSchemaVersion(ctx context.Context, registryName string, s schema.Schema) (*SchemaVersion, error) {
	return t.call(ctx, "register_schema_version", map[string]interface{}{
		"registry_name": registryName,
		"format":        s.Format(),
		"name":          s.Name(),
		"definition":    s.Definition(),
	})
}

func (t *HTTPTransport) PutSchemaVersionMetadata(ctx context.Context, registryName string, svid SVID, metadata map[string]string) error {
	_, err := t.call(ctx, "put_schema_version_metadata", map[string]interface{}{
		"registry_name": registryName,
		"svid":          svid.String(),
		"metadata":      metadata,
	})
	return err
}

// call invokes one RPC operation and maps the result, or a non-2xx
// response, onto a SchemaVersion or a registry sentinel error.
func (t *HTTPTransport) call(ctx context.Context, operation string, payload map[string]interface{}) (*SchemaVersion, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrTransport, err)
	}

	url := fmt.Sprintf("%s/%s", t.endpoint, operation)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.username != "" {
		req.SetBasicAuth(t.username, t.password)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, operation)
	case http.StatusConflict:
		return nil, fmt.Errorf("%w: %s", ErrSchemaEvolution, operation)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d: %s", ErrTransport, operation, resp.StatusCode, string(respBody))
	}

	if operation == "put_schema_version_metadata" {
		return nil, nil
	}

	var wire wireSchemaVersion
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}

	svid, err := uuid.Parse(wire.SVID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid svid %q: %v", ErrTransport, wire.SVID, err)
	}

	return &SchemaVersion{
		SVID:   svid,
		Status: Status(wire.Status),
		Schema: resolveWireSchema(wire),
	}, nil
}

func resolveWireSchema(wire wireSchemaVersion) schema.Schema {
	switch schema.Format(wire.Format) {
	case schema.FormatAvro:
		s, err := schema.NewAvro(wire.Name, wire.Definition, schema.DefaultCompatibility)
		if err == nil {
			return s
		}
	}
	return schema.NewJSON(wire.Name, wire.Definition, schema.DefaultCompatibility)
}
