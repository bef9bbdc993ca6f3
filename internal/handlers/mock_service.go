package handlers

import (
	"context"
	"net/http"
	"time"

	"sweather/internal/models"
	"sweather/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockForecast struct {
	state models.ViewState
	snap  *models.ForecastSnapshot
	hours []models.HourForecast

	selectErr error
	langErr   error
	hoursErr  error

	lastQuery string
	lastLang  models.Language
	lastIndex int

	refreshCalls int
	searchCalls  int
	nextCalls    int
	prevCalls    int
	summaryCalls int
}

func (m *mockForecast) Refresh(ctx context.Context) models.ViewState {
	m.refreshCalls++
	return m.state
}
func (m *mockForecast) Search(ctx context.Context, query string) models.ViewState {
	m.searchCalls++
	m.lastQuery = query
	return m.state
}
func (m *mockForecast) ChangeLanguage(ctx context.Context, lang models.Language) (models.ViewState, error) {
	m.lastLang = lang
	return m.state, m.langErr
}
func (m *mockForecast) SelectDay(index int) error {
	m.lastIndex = index
	return m.selectErr
}
func (m *mockForecast) NextDay()       { m.nextCalls++ }
func (m *mockForecast) PrevDay()       { m.prevCalls++ }
func (m *mockForecast) BackToSummary() { m.summaryCalls++ }
func (m *mockForecast) State() (models.ViewState, *models.ForecastSnapshot) {
	return m.state, m.snap
}
func (m *mockForecast) HoursForDay(index int) ([]models.HourForecast, error) {
	m.lastIndex = index
	return m.hours, m.hoursErr
}

type mockPreferences struct {
	cur      models.Preferences
	themeErr error
	langErr  error
}

func (m *mockPreferences) Load(ctx context.Context) {}
func (m *mockPreferences) Get() models.Preferences  { return m.cur }
func (m *mockPreferences) SetTheme(ctx context.Context, t models.Theme) error {
	if m.themeErr != nil {
		return m.themeErr
	}
	m.cur.Theme = t
	return nil
}
func (m *mockPreferences) SetLanguage(ctx context.Context, l models.Language) error {
	if m.langErr != nil {
		return m.langErr
	}
	m.cur.Language = l
	return nil
}
func (m *mockPreferences) Subscribe(fn func(models.Preferences)) {}

type mockEventLog struct {
	resp     []models.WeatherEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.WeatherEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockDigest struct {
	report service.DigestReport
	err    error
	calls  int
}

func (m *mockDigest) Send(ctx context.Context) (service.DigestReport, error) {
	m.calls++
	return m.report, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
