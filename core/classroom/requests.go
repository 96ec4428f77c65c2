package classroom

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-client/core"
)

// Device platforms accepted for push registration.
const (
	OSAndroid = "android"
	OSIOS     = "ios"
	OSWeb     = "web"
)

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Username = core.CleanString(c.Username, true /* lower */)
	return validate.Struct(c)
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Subject string `json:"subject" validate:"omitempty,max=100"`
	About   string `json:"about" validate:"omitempty,max=1000"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Subject = core.CleanString(nc.Subject)
	nc.About = core.CleanString(nc.About)
	return validate.Struct(nc)
}

type JoinClass struct {
	JoinCode string `json:"joinCode" validate:"required,joincode"`
}

func (jc *JoinClass) Validate(validate *validator.Validate) error {
	jc.JoinCode = core.CleanString(jc.JoinCode)
	return validate.Struct(jc)
}

// UpdateClassPhoto is sent as a multipart form.
type UpdateClassPhoto struct {
	ClassID     string `json:"classId" validate:"required"`
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType" validate:"omitempty,oneof=image/jpeg image/png image/webp"`
	Content     []byte `json:"-" validate:"required,max=5242880"`
}

func (up *UpdateClassPhoto) Validate(validate *validator.Validate) error {
	up.ClassID = core.CleanString(up.ClassID)
	up.Filename = core.CleanString(up.Filename)
	return validate.Struct(up)
}

// PushRegistration is delivered by the platform push service.
type PushRegistration struct {
	OS    string `json:"os" validate:"required,oneof=android ios web"`
	Token string `json:"token" validate:"required,notblank"`
}

func (pr *PushRegistration) Validate(validate *validator.Validate) error {
	pr.OS = core.CleanString(pr.OS, true /* lower */)
	pr.Token = core.CleanString(pr.Token)
	return validate.Struct(pr)
}

// VideoProgress reports how far a student watched a class video.
type VideoProgress struct {
	ClassID  string  `json:"classId" validate:"required"`
	VideoID  string  `json:"videoId" validate:"required"`
	Position float64 `json:"position" validate:"gte=0"` // seconds
	Duration float64 `json:"duration" validate:"gtefield=Position"`
}

func (vp *VideoProgress) Validate(validate *validator.Validate) error {
	vp.ClassID = core.CleanString(vp.ClassID)
	vp.VideoID = core.CleanString(vp.VideoID)
	return validate.Struct(vp)
}
