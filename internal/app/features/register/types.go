package register

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/dalemusser/affiliatehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/affiliatehub/internal/app/system/normalize"
)

type registerInput struct {
	Username string `json:"username" validate:"required,max=100" label:"Username"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,min=6,max=72" label:"Password"`
	Roles    Roles  `json:"roles"`
}

func (in *registerInput) normalize() {
	in.Username = normalize.Username(htmlsanitize.PlainText(in.Username))
	in.Email = normalize.Email(in.Email)
	in.Roles = normalize.Roles(in.Roles)
}

// Roles accepts either a single role ("admin") or a list (["admin","user"]).
type Roles []string

func (r *Roles) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Roles{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return errors.New("roles must be a string or an array of strings")
	}
	*r = list
	return nil
}
