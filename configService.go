package main

import (
	"crypto/subtle"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/buger/jsonparser"
)

// request bodies are tiny, anything bigger is a mistake
const maxBodySize = 4096

const defaultPrintDuration = 3 * time.Second

type configResponse struct {
	Response string          `json:"response"`
	Error    string          `json:"error,omitempty"`
	Status   *statusSnapshot `json:"status,omitempty"`
}

type configService interface {
	launch(handler *APIHandler, addr string, maxConns int) error
	stop()
}

// APIHandler - settings for the thing that handles HTTP requests
type APIHandler struct {
	rt     runtimeConfig
	secret string
	user   string
	realm  string
}

// NewHandler - create a new API handler
func NewHandler(rt runtimeConfig) APIHandler {
	secret := rt.settings.GetString(sHTTPSecret)
	if secret == "" {
		secret = rt.clock.Now().String()
		rt.logger.Printf("no %s configured, using '%s'", sHTTPSecret, secret)
	}
	return APIHandler{
		rt:     rt,
		secret: secret,
		user:   rt.settings.GetString(sHTTPUser),
		realm:  "segscroll",
	}
}

// BasicAuth - provide a middleware to authenticate users
func (m *APIHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAnswer(w http.ResponseWriter, code int, cr configResponse) {
	output, _ := json.Marshal(cr)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(output)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeAnswer(w, http.StatusBadRequest, configResponse{Response: "BAD", Error: msg})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
}

// hand an effect to the display loop without waiting on it
func (m *APIHandler) sendEffect(w http.ResponseWriter, e displayEffect) {
	select {
	case m.rt.comms.effects <- e:
		writeAnswer(w, http.StatusOK, configResponse{Response: "OK"})
	default:
		writeAnswer(w, http.StatusServiceUnavailable, configResponse{Response: "BAD", Error: "display busy"})
	}
}

func (m *APIHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	snap := m.rt.status.get()
	writeAnswer(w, http.StatusOK, configResponse{Response: "OK", Status: &snap})
}

func (m *APIHandler) apiPrint(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	text, err := jsonparser.GetString(body, "text")
	if err != nil {
		badRequest(w, "text: "+err.Error())
		return
	}
	d := defaultPrintDuration
	if dur, err := jsonparser.GetString(body, "duration"); err == nil {
		d, err = time.ParseDuration(dur)
		if err != nil || d <= 0 {
			badRequest(w, "Bad duration: "+dur)
			return
		}
	}
	m.sendEffect(w, printEffect(text, d))
}

func (m *APIHandler) apiBrightness(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	level, err := jsonparser.GetFloat(body, "level")
	if err != nil {
		badRequest(w, "level: "+err.Error())
		return
	}
	m.sendEffect(w, brightnessEffect(level))
}

func (m *APIHandler) rootHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/status", http.StatusMovedPermanently)
}

func runConfigService(rt runtimeConfig) {
	handler := NewHandler(rt)

	addr := rt.settings.GetString(sHTTPAddr)
	if err := rt.configService.launch(&handler, addr, rt.settings.GetInt(sHTTPMaxConns)); err != nil {
		rt.logger.Printf("Error: %s", err.Error())
		return
	}

	rt.logger.Printf("config service listening on %s", addr)

	<-rt.comms.quit
	rt.logger.Printf("quit from config service")
	// stop the server
	rt.configService.stop()
}

func startConfigService(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "ConfigService"}
	wg.Add(1)
	go func() {
		defer wg.Done()
		runConfigService(rt)
	}()
}
