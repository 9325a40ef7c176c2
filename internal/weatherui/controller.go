// Package weatherui drives the weather display: it runs lookups against the
// backend API and moves the UI between loading, error and result.
package weatherui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/skyglance/weather/internal/domain"
	"github.com/skyglance/weather/internal/logger"
)

const (
	opAutoDetect   = "autoDetect"
	opCoordinates  = "fetchByCoordinates"
	opSearchByCity = "searchByCity"
)

var errMissingData = errors.New("weather response has no data")

// API is the backend contract. Any returned error is treated as a transport
// failure; a response with success:false is returned with a nil error.
type API interface {
	Location(ctx context.Context) (domain.LocationResult, error)
	WeatherByCoordinates(ctx context.Context, lat, lon float64) (domain.WeatherResult, error)
	WeatherByCity(ctx context.Context, city string) (domain.WeatherResult, error)
}

// View receives UI updates. Calls are serialized by the controller.
type View interface {
	// ShowLoading shows the loading indicator and hides the error and result panels
	ShowLoading()
	// ShowError shows message in the error panel and hides the loading indicator
	ShowError(message string)
	// ShowWeather fills every field, hides the loading indicator and shows the result panel
	ShowWeather(d Display)
}

// Controller is the weather UI state machine. It is safe for concurrent use.
//
// Each lookup takes a token from a counter. A result is applied only while its
// token is the newest one, so when lookups overlap the most recently started
// one decides the final state and older responses are dropped.
type Controller struct {
	api  API
	view View
	log  *logger.Logger

	mu    sync.Mutex
	seq   uint64
	state State
}

// NewController creates a controller in the idle state
func NewController(api API, view View, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{
		api:   api,
		view:  view,
		log:   log,
		state: State{Phase: PhaseIdle},
	}
}

// State returns the current UI state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AutoDetect geolocates the user and, on success, fetches weather for the
// returned coordinates.
func (c *Controller) AutoDetect(ctx context.Context) {
	token := c.begin()
	c.apply(token, loadingState())

	loc, err := c.api.Location(ctx)
	if err != nil {
		c.apply(token, errorState(transportError(opAutoDetect, err)))
		return
	}
	if !loc.Success || loc.Lat == nil || loc.Lon == nil {
		c.apply(token, errorState(applicationError(opAutoDetect, loc.Error, MsgDetectFailed)))
		return
	}

	// stays in loading until the chained fetch resolves
	c.fetchByCoordinates(ctx, token, *loc.Lat, *loc.Lon)
}

// FetchByCoordinates fetches weather for lat/lon. It does not show the
// loading indicator; callers that want one must show it first.
func (c *Controller) FetchByCoordinates(ctx context.Context, lat, lon float64) {
	c.fetchByCoordinates(ctx, c.begin(), lat, lon)
}

// SearchByCity looks up weather for a typed city name. Blank input fails
// immediately without a network call.
func (c *Controller) SearchByCity(ctx context.Context, input string) {
	token := c.begin()

	city := strings.TrimSpace(input)
	if city == "" {
		c.apply(token, errorState(applicationError(opSearchByCity, "", MsgEmptyCity)))
		return
	}

	c.apply(token, loadingState())
	res, err := c.api.WeatherByCity(ctx, city)
	c.resolveWeather(token, opSearchByCity, res, err, MsgCityNotFound)
}

func (c *Controller) fetchByCoordinates(ctx context.Context, token uint64, lat, lon float64) {
	res, err := c.api.WeatherByCoordinates(ctx, lat, lon)
	c.resolveWeather(token, opCoordinates, res, err, MsgWeatherFailed)
}

func (c *Controller) resolveWeather(token uint64, op string, res domain.WeatherResult, err error, fallback string) {
	switch {
	case err != nil:
		c.apply(token, errorState(transportError(op, err)))
	case !res.Success:
		c.apply(token, errorState(applicationError(op, res.Error, fallback)))
	case res.Data == nil:
		c.apply(token, errorState(transportError(op, errMissingData)))
	default:
		c.apply(token, loadedState(*res.Data))
	}
}

// begin claims the token for a new lookup
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// apply moves to s if token still belongs to the newest lookup
func (c *Controller) apply(token uint64, s State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq {
		c.log.Debug("dropping stale lookup result",
			slog.Uint64("token", token),
			slog.Uint64("latest", c.seq),
			slog.String("phase", s.Phase.String()),
		)
		return false
	}

	c.state = s
	switch s.Phase {
	case PhaseLoading:
		c.view.ShowLoading()
	case PhaseError:
		if s.Err.Kind == KindTransport {
			c.log.Warn("lookup failed", slog.String("op", s.Err.Op), slog.String("error", s.Err.Error()))
		} else {
			c.log.Debug("lookup rejected", slog.String("op", s.Err.Op), slog.String("message", s.Err.Message))
		}
		c.view.ShowError(s.Err.Message)
	case PhaseLoaded:
		c.log.Debug("weather loaded", slog.String("city", s.Reading.City))
		c.view.ShowWeather(s.Display)
	}
	return true
}
