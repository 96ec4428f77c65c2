package classroom

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-client/core"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return validate
}

func TestJoinClass_Validate(t *testing.T) {
	validate := newValidator()

	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "empty", code: "", wantErr: true},
		{name: "too short", code: "ab12", wantErr: true},
		{name: "symbols", code: "ab-12cd", wantErr: true},
		{name: "valid", code: "ab12cd"},
		{name: "valid with spaces", code: "  AB12CD34 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jc := JoinClass{JoinCode: tt.code}
			if err := jc.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewClass_Validate(t *testing.T) {
	validate := newValidator()

	nc := NewClass{Name: "   "}
	err := nc.Validate(validate)
	if err == nil {
		t.Fatal("Validate() expected an error for a blank name")
	}
	fields := core.FieldErrors(err, core.NewTranslator())
	if _, ok := fields["name"]; !ok {
		t.Errorf("FieldErrors() = %v; want an error on \"name\"", fields)
	}

	nc = NewClass{Name: " Physics 101 ", Subject: " physics "}
	if err := nc.Validate(validate); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
	if nc.Name != "Physics 101" || nc.Subject != "physics" {
		t.Errorf("Validate() did not clean fields: %+v", nc)
	}
}

func TestPushRegistration_Validate(t *testing.T) {
	validate := newValidator()

	tests := []struct {
		name    string
		reg     PushRegistration
		wantOS  string
		wantErr bool
	}{
		{name: "android", reg: PushRegistration{OS: "Android", Token: "tok"}, wantOS: OSAndroid},
		{name: "ios", reg: PushRegistration{OS: "ios", Token: "tok"}, wantOS: OSIOS},
		{name: "unknown os", reg: PushRegistration{OS: "symbian", Token: "tok"}, wantErr: true},
		{name: "no token", reg: PushRegistration{OS: "web", Token: "  "}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.reg.OS != tt.wantOS {
				t.Errorf("OS = %q; want %q", tt.reg.OS, tt.wantOS)
			}
		})
	}
}

func TestCredentials_Validate(t *testing.T) {
	validate := newValidator()

	c := Credentials{Username: " Alice ", Password: "secret"}
	if err := c.Validate(validate); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
	if c.Username != "alice" {
		t.Errorf("Username = %q; want %q", c.Username, "alice")
	}

	c = Credentials{Username: "alice"}
	if err := c.Validate(validate); err == nil {
		t.Error("Validate() expected an error for a missing password")
	}
}

func TestVideoProgress_Validate(t *testing.T) {
	validate := newValidator()

	tests := []struct {
		name    string
		vp      VideoProgress
		wantErr bool
	}{
		{name: "valid", vp: VideoProgress{ClassID: "c1", VideoID: "v1", Position: 30, Duration: 600}},
		{name: "finished", vp: VideoProgress{ClassID: "c1", VideoID: "v1", Position: 600, Duration: 600}},
		{name: "no video", vp: VideoProgress{ClassID: "c1", VideoID: " ", Position: 30, Duration: 600}, wantErr: true},
		{name: "negative position", vp: VideoProgress{ClassID: "c1", VideoID: "v1", Position: -1, Duration: 600}, wantErr: true},
		{name: "past the end", vp: VideoProgress{ClassID: "c1", VideoID: "v1", Position: 601, Duration: 600}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.vp.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
