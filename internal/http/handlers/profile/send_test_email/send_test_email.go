package sendtestemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "remindme/internal/core/domain/common"
	"remindme/internal/core/domain/email"
	e "remindme/internal/core/domain/errors"
	ratelimiter "remindme/internal/core/domain/rate_limiter"
	"remindme/internal/core/domain/user"
	"remindme/internal/core/services"
	sendtestemail "remindme/internal/core/services/send_test_email"
	"remindme/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MSG_SENT            = "Test email sent successfully. Check your inbox."
	MSG_NOT_CONFIGURED  = "Email is not configured. Set the SMTP settings to enable email delivery."
	MSG_DELIVERY_FAILED = "Failed to send test email. Check the email settings and try again."
)

type Handler struct {
	service services.Service[sendtestemail.Input, sendtestemail.Result]
}

func New(
	service services.Service[sendtestemail.Input, sendtestemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
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

	_, err := h.service.Run(r.Context(), sendtestemail.Input{To: c.NewEmail(input.Email)})
	if err == nil {
		response.RenderMessage(rw, MSG_SENT, http.StatusOK)
		return
	}

	var deliveryErr *e.DeliveryError
	switch {
	case errors.Is(err, user.ErrUserDoesNotExist):
		response.RenderUnauthorized(rw)
	case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
		response.RenderRateLimitExceeded(rw)
	case errors.Is(err, email.ErrNotConfigured):
		response.RenderError(rw, MSG_NOT_CONFIGURED, http.StatusInternalServerError)
	case errors.As(err, &deliveryErr):
		response.RenderError(rw, MSG_DELIVERY_FAILED, http.StatusInternalServerError)
	default:
		response.RenderInternalError(rw)
	}
}
