package apisvc

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/masomo-client/core/classroom"
	"github.com/trezcool/masomo-client/core/store"
)

var (
	_ store.QuizRepository       = (*Client)(nil)
	_ store.DiscussionRepository = (*Client)(nil)
	_ store.AssignmentRepository = (*Client)(nil)
)

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for an auth token.
func (c *Client) Login(ctx context.Context, creds classroom.Credentials) (string, error) {
	var res tokenResponse
	if err := c.post(ctx, "", c.conf.URL(c.conf.Endpoints.Login), creds, &res); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", errors.New("login: empty token")
	}
	return res.Token, nil
}

// CheckToken asks the API whether token is still valid and returns its owner.
func (c *Client) CheckToken(ctx context.Context, token string) (classroom.Profile, error) {
	var p classroom.Profile
	err := c.get(ctx, token, c.conf.URL(c.conf.Endpoints.CheckToken), &p)
	return p, err
}

func (c *Client) FetchQuizzes(ctx context.Context, token, classID string) (classroom.QuizBuckets, error) {
	b := classroom.EmptyQuizBuckets()
	if err := c.get(ctx, token, c.conf.URL(c.conf.Endpoints.Quiz, classID), &b); err != nil {
		return classroom.QuizBuckets{}, err
	}
	return b, nil
}

func (c *Client) FetchDiscussions(ctx context.Context, token, classID string) ([]classroom.Discussion, error) {
	ds := make([]classroom.Discussion, 0)
	err := c.get(ctx, token, c.conf.URL(c.conf.Endpoints.Discuss, classID), &ds)
	return ds, err
}

func (c *Client) FetchAssignments(ctx context.Context, token, classID string) ([]classroom.Assignment, error) {
	as := make([]classroom.Assignment, 0)
	err := c.get(ctx, token, c.conf.URL(c.conf.Endpoints.Assignment, classID), &as)
	return as, err
}

// ListClasses returns the classes the user owns or joined.
func (c *Client) ListClasses(ctx context.Context, token string) ([]classroom.Class, error) {
	classes := make([]classroom.Class, 0)
	err := c.get(ctx, token, c.conf.URL(c.conf.Endpoints.Class), &classes)
	return classes, err
}

func (c *Client) GetClass(ctx context.Context, token, classID string) (classroom.Class, error) {
	var class classroom.Class
	err := c.get(ctx, token, c.conf.URL(c.conf.Endpoints.Class, classID), &class)
	return class, err
}

func (c *Client) CreateClass(ctx context.Context, token string, nc classroom.NewClass) (classroom.Class, error) {
	var class classroom.Class
	err := c.post(ctx, token, c.conf.URL(c.conf.Endpoints.Class), nc, &class)
	return class, err
}

func (c *Client) JoinClass(ctx context.Context, token string, jc classroom.JoinClass) (classroom.Class, error) {
	var class classroom.Class
	err := c.post(ctx, token, c.conf.URL(c.conf.Endpoints.Class, "join"), jc, &class)
	return class, err
}

// UpdateClassPhoto uploads a new class photo as a multipart form (field "photo").
func (c *Client) UpdateClassPhoto(ctx context.Context, token string, up classroom.UpdateClassPhoto) (classroom.Class, error) {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="photo"; filename="`+escapeQuotes(up.Filename)+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return classroom.Class{}, errors.Wrap(err, "creating photo part")
	}
	if _, err = part.Write(up.Content); err != nil {
		return classroom.Class{}, errors.Wrap(err, "writing photo part")
	}
	if err = w.Close(); err != nil {
		return classroom.Class{}, errors.Wrap(err, "closing multipart writer")
	}

	var class classroom.Class
	err = c.do(ctx, request{
		method:      rest.Put,
		url:         c.conf.URL(c.conf.Endpoints.Class, up.ClassID, "photo"),
		token:       token,
		raw:         body.Bytes(),
		contentType: w.FormDataContentType(),
	}, &class)
	return class, err
}

func (c *Client) ListStudents(ctx context.Context, token, classID string) ([]classroom.Student, error) {
	students := make([]classroom.Student, 0)
	err := c.get(ctx, token, c.conf.URL(c.conf.Endpoints.Student, classID), &students)
	return students, err
}

// FetchResults returns the results of a quiz. Students only get their own.
func (c *Client) FetchResults(ctx context.Context, token, classID, quizID string) ([]classroom.Result, error) {
	results := make([]classroom.Result, 0)
	err := c.get(ctx, token, c.conf.URL(c.conf.Endpoints.Result, classID, quizID), &results)
	return results, err
}

func (c *Client) ListPayments(ctx context.Context, token, classID string) ([]classroom.Payment, error) {
	payments := make([]classroom.Payment, 0)
	err := c.get(ctx, token, c.conf.URL(c.conf.Endpoints.Payment, classID), &payments)
	return payments, err
}

func (c *Client) TrackVideo(ctx context.Context, token string, vp classroom.VideoProgress) error {
	return c.post(ctx, token, c.conf.URL(c.conf.Endpoints.VidTracker), vp, nil)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
