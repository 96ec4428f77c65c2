package apisvc

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/masomo-client/core"
)

// Client talks to the Masomo API. All paths come from core.Config.Endpoints.
type Client struct {
	conf *core.Config
	rest *rest.Client
	log  core.Logger
}

func NewClient(conf *core.Config, log core.Logger) *Client {
	if log == nil {
		log = core.NopLogger{}
	}
	return &Client{
		conf: conf,
		rest: &rest.Client{HTTPClient: &http.Client{Timeout: conf.API.Timeout}},
		log:  log,
	}
}

type request struct {
	method      rest.Method
	url         string
	token       string
	query       map[string]string
	body        interface{} // JSON encoded, unless raw is set
	raw         []byte
	contentType string
}

// errorBody is the error payload of the API.
type errorBody struct {
	Error string `json:"error"`
}

// do sends req and decodes a 2xx JSON answer into dest (if not nil).
// Non-2xx answers are returned as *core.APIError.
func (c *Client) do(ctx context.Context, req request, dest interface{}) error {
	r := rest.Request{
		Method:      req.method,
		BaseURL:     req.url,
		QueryParams: req.query,
		Headers: map[string]string{
			"Accept":       "application/json",
			"X-Request-ID": uuid.New().String(),
		},
	}
	if req.token != "" {
		r.Headers["Authorization"] = "Bearer " + req.token
	}

	switch {
	case req.raw != nil:
		r.Body = req.raw
		r.Headers["Content-Type"] = req.contentType
	case req.body != nil:
		body, err := json.Marshal(req.body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		r.Body = body
		r.Headers["Content-Type"] = "application/json"
	}

	res, err := c.rest.SendWithContext(ctx, r)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.method, req.url)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		apiErr := &core.APIError{StatusCode: res.StatusCode}
		var eb errorBody
		if json.Unmarshal([]byte(res.Body), &eb) == nil {
			apiErr.Message = eb.Error
		}
		if res.StatusCode >= http.StatusInternalServerError {
			c.log.Warn("api error", apiErr, map[string]interface{}{
				"url":       req.url,
				"requestId": r.Headers["X-Request-ID"],
			})
		}
		return apiErr
	}

	if dest == nil || strings.TrimSpace(res.Body) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(res.Body), dest); err != nil {
		return errors.Wrapf(err, "decoding %s %s", req.method, req.url)
	}
	return nil
}

func (c *Client) get(ctx context.Context, token, url string, dest interface{}) error {
	return c.do(ctx, request{method: rest.Get, url: url, token: token}, dest)
}

func (c *Client) post(ctx context.Context, token, url string, body, dest interface{}) error {
	return c.do(ctx, request{method: rest.Post, url: url, token: token, body: body}, dest)
}
