package requestpasswordreset

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "remindme/internal/core/domain/common"
	e "remindme/internal/core/domain/errors"
	ratelimiter "remindme/internal/core/domain/rate_limiter"
	"remindme/internal/core/services"
	service "remindme/internal/core/services/request_password_reset"
	"remindme/internal/http/handlers/response"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MSG_ACKNOWLEDGED    = "If an account with this email exists, you will receive a password reset link."
	MSG_STORAGE_FAILED  = "Failed to create reset token. Please try again later."
	MSG_DELIVERY_FAILED = "Failed to send reset email. Please try again later."
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
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

type Result struct {
	Message   string     `json:"message"`
	DevMode   bool       `json:"devMode,omitempty"`
	ResetURL  string     `json:"resetUrl,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
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

	result, err := h.service.Run(r.Context(), service.Input{Email: c.NewEmail(input.Email)})
	if err != nil {
		var deliveryErr *e.DeliveryError
		var storageErr *e.StorageError
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.As(err, &deliveryErr):
			response.RenderError(rw, MSG_DELIVERY_FAILED, http.StatusInternalServerError)
		case errors.As(err, &storageErr):
			response.RenderError(rw, MSG_STORAGE_FAILED, http.StatusInternalServerError)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{Message: MSG_ACKNOWLEDGED}
	if result.DevMode {
		expiresAt := result.ExpiresAt
		res.DevMode = true
		res.ResetURL = result.ResetURL
		res.ExpiresAt = &expiresAt
	}
	response.Render(rw, res, http.StatusOK)
}
