package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/user"
	"remindme/internal/core/services"
	resetpassword "remindme/internal/core/services/reset_password"
	"remindme/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MSG_SUCCESS        = "Password reset successful. You can now log in with your new password."
	MSG_INVALID_TOKEN  = "Invalid or expired reset token"
	MSG_EXPIRED_TOKEN  = "Reset token has expired. Please request a new one."
	MSG_USER_NOT_FOUND = "User not found"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.Password, validation.Required, validation.RuneLength(6, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:       user.PasswordResetToken(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	switch {
	case err == nil:
		response.RenderMessage(rw, MSG_SUCCESS, http.StatusOK)
	case errors.Is(err, user.ErrInvalidPasswordResetToken):
		response.RenderError(rw, MSG_INVALID_TOKEN, http.StatusBadRequest)
	case errors.Is(err, user.ErrPasswordResetTokenExpired):
		response.RenderError(rw, MSG_EXPIRED_TOKEN, http.StatusBadRequest)
	case errors.Is(err, user.ErrUserDoesNotExist):
		response.RenderError(rw, MSG_USER_NOT_FOUND, http.StatusNotFound)
	default:
		response.RenderInternalError(rw)
	}
}
