// Package supabase implementa el almacén remoto sobre la API REST (PostgREST)
// de un proyecto Supabase. Usa net/http; no requiere el SDK oficial.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxBodyBytes límite de lectura de respuestas (tablas completas incluidas).
const maxBodyBytes = 8 << 20

// APIError respuesta no 2xx de PostgREST.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: %s %s HTTP %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client cliente HTTP mínimo para /rest/v1.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL es la URL del proyecto (https://<ref>.supabase.co).
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do envía la petición a /rest/v1/<table>. body y out son opcionales.
func (c *Client) do(ctx context.Context, method, table string, query url.Values, body any, prefer string, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("supabase: SUPABASE_ANON_KEY no configurado")
	}
	path := "/rest/v1/" + table
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("supabase: serializar %s: %w", table, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("supabase: crear HTTP request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("supabase: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("supabase: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("supabase: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(rawBody)
		if len(msg) > 512 {
			msg = msg[:512]
		}
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: msg}
	}
	if out == nil || len(rawBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("supabase: deserializar %s: %w", table, err)
	}
	return nil
}
