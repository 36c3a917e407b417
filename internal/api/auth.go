package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/suudhaa/grocer-api/internal/domain/auth"
	"github.com/suudhaa/grocer-api/internal/domain/order"
)

// SignUp registers a customer account.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	var form auth.SignUpForm
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			form.Name, err = d.Str()
		case "phone":
			form.Phone, err = d.Str()
		case "password":
			form.Password, err = d.Str()
		case "address":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "area":
					form.Address.Area, err = d.Str()
				case "ward":
					form.Address.Ward, err = d.Int()
				case "street":
					form.Address.Street, err = d.Str()
				case "houseNo":
					form.Address.HouseNo, err = d.Str()
				case "nearbyPlace":
					form.Address.NearbyPlace, err = d.Str()
				default:
					err = d.Skip()
				}
				return err
			})
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.sessions.SignUp(r.Context(), form)
	if err != nil {
		var verr *order.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidationError(w, verr)
		case errors.Is(err, auth.ErrPhoneTaken):
			writeError(w, http.StatusConflict, "phone already registered")
		default:
			writeInternalError(w, r, errors.Wrap(err, "sign up"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("userId", func(e *jx.Encoder) { e.Str(u.ID) })
			e.Field("name", func(e *jx.Encoder) { e.Str(u.Name) })
			e.Field("phone", func(e *jx.Encoder) { e.Str(u.Phone) })
			e.Field("role", func(e *jx.Encoder) { e.Str(string(u.Role)) })
		})
	})
}

// SignIn exchanges credentials for a session token.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	var phone, password string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "phone":
			phone, err = d.Str()
		case "password":
			password, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessions.SignIn(r.Context(), phone, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid phone or password")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "sign in"))
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("token", func(e *jx.Encoder) { e.Str(session.Token) })
			e.Field("userId", func(e *jx.Encoder) { e.Str(session.UserID) })
			e.Field("role", func(e *jx.Encoder) { e.Str(string(session.Role)) })
		})
	})
}
