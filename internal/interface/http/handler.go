package http

import (
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/weather-beats/internal/domain/beats"
	"github.com/yanqian/weather-beats/internal/domain/clothing"
	"github.com/yanqian/weather-beats/internal/domain/mapping"
	"github.com/yanqian/weather-beats/internal/domain/playlist"
	"github.com/yanqian/weather-beats/internal/domain/weather"
)

const weatherFailureMessage = "An error occurred while fetching data."

var leadingInteger = regexp.MustCompile(`^\s*[+-]?\d+`)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	beatsSvc   beats.Service
	mappingSvc mapping.Service
	resolver   playlist.Resolver
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(beatsSvc beats.Service, mappingSvc mapping.Service, resolver playlist.Resolver, logger *slog.Logger) *Handler {
	return &Handler{
		beatsSvc:   beatsSvc,
		mappingSvc: mappingSvc,
		resolver:   resolver,
		logger:     logger.With("component", "http.handler"),
	}
}

// Weather answers the primary weather, music and clothing query.
func (h *Handler) Weather(c *gin.Context) {
	req := beats.Request{
		Lat:  c.Query("lat"),
		Lon:  c.Query("lon"),
		Mood: c.Query("mood"),
	}

	resp, err := h.beatsSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, weatherFailureMessage))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DebugMappings lists every stored mapping.
func (h *Handler) DebugMappings(c *gin.Context) {
	items, err := h.mappingSvc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, fromDomainError(err, ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "mappings": items})
}

// DebugPlaylist runs the playlist cascade for a genre.
func (h *Handler) DebugPlaylist(c *gin.Context) {
	genre := c.Param("genre")
	c.JSON(http.StatusOK, gin.H{"genre": genre, "playlistUrl": h.resolver.Resolve(c.Request.Context(), genre)})
}

// DebugClothing evaluates the clothing rules for a condition and integer Celsius value.
func (h *Handler) DebugClothing(c *gin.Context) {
	condition := c.Param("condition")
	raw := leadingInteger.FindString(c.Param("temp"))
	celsius, err := strconv.Atoi(strings.TrimSpace(raw))
	if raw == "" || err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_input", "temperature must be a number", err))
		return
	}
	temp := weather.FromCelsius(float64(celsius))
	c.JSON(http.StatusOK, gin.H{
		"weather":     condition,
		"temperature": gin.H{"celsius": temp.Celsius(), "fahrenheit": temp.Fahrenheit()},
		"suggestions": clothing.Recommend(condition, float64(celsius)),
	})
}

// AddMapping stores a new weather and mood to genre mapping.
func (h *Handler) AddMapping(c *gin.Context) {
	var req mapping.Mapping
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_input", "All fields are required", err))
		return
	}

	saved, err := h.mappingSvc.Add(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, ""))
		return
	}
	h.logger.Info("mapping added", "condition", saved.WeatherCondition, "mood", saved.Mood, "genre", saved.SuggestedGenre)
	c.JSON(http.StatusOK, gin.H{"message": "Mapping added successfully", "mapping": saved})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
