package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/munnerz/goautoneg"

	authdomain "github.com/AlibekovAA/onion-recipes/internal/auth/domain"
	commonhttp "github.com/AlibekovAA/onion-recipes/internal/common/http"
	"github.com/AlibekovAA/onion-recipes/internal/common/jwtverify"
	"github.com/AlibekovAA/onion-recipes/internal/common/logger"
	"github.com/AlibekovAA/onion-recipes/internal/food/service"
	"github.com/AlibekovAA/onion-recipes/internal/food/service/mapper"
)

const (
	formatJSON = "json"
	formatText = "text"

	mediaJSON = "application/json"
	mediaText = "text/plain"
)

var (
	errUnsupportedFormat = errors.New("format must be json or text")
	errNotAcceptable     = errors.New("acceptable media types are application/json and text/plain")
)

// SessionResolver turns a bearer token into a session. Tokens that fail
// verification resolve to an invalid session.
type SessionResolver interface {
	FromToken(ctx context.Context, token string) authdomain.Session
}

type Handler struct {
	food     *service.FoodService
	sessions SessionResolver
	errors   *commonhttp.ErrorHandler
	log      *logger.Logger
}

func NewHandler(food *service.FoodService, sessions SessionResolver, requestTimeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{
		food:     food,
		sessions: sessions,
		errors:   commonhttp.NewErrorHandler(log),
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/food/recipes", commonhttp.RequireMethod(http.MethodGet)(commonhttp.WithTimeout(requestTimeout)(h.recipes)))

	return mux
}

func (h *Handler) recipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format, err := negotiateFormat(r)
	switch {
	case errors.Is(err, errUnsupportedFormat):
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeUnsupportedFormat,
			err.Error(), nil, commonhttp.TraceIDFromContext(ctx))
		return
	case errors.Is(err, errNotAcceptable):
		commonhttp.WriteErrorEnvelope(w, http.StatusNotAcceptable, commonhttp.CodeNotAcceptable,
			err.Error(), nil, commonhttp.TraceIDFromContext(ctx))
		return
	}

	var session authdomain.Session
	if token, ok := jwtverify.BearerToken(r); ok {
		session = h.sessions.FromToken(ctx, token)
	}
	recipes, err := h.food.GetRecipes(ctx, session)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	h.log.WithFields(ctx, logger.Fields{
		"user_id": session.UserID,
		"count":   recipes.Len(),
		"format":  format,
		"action":  "food_recipes_success",
	}).Info("food/recipes success")

	if format == formatText {
		commonhttp.WriteText(w, http.StatusOK, recipes.String())
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, mapper.RecipesToDTO(recipes))
}

// negotiateFormat prefers an explicit ?format= over the Accept header. A
// missing Accept header means JSON.
func negotiateFormat(r *http.Request) (string, error) {
	if f := strings.ToLower(r.URL.Query().Get("format")); f != "" {
		switch f {
		case formatJSON, formatText:
			return f, nil
		default:
			return "", errUnsupportedFormat
		}
	}

	accept := strings.TrimSpace(r.Header.Get("Accept"))
	if accept == "" {
		return formatJSON, nil
	}

	switch goautoneg.Negotiate(accept, []string{mediaJSON, mediaText}) {
	case mediaJSON:
		return formatJSON, nil
	case mediaText:
		return formatText, nil
	default:
		return "", errNotAcceptable
	}
}
