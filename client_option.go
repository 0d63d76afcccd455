package uci

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaudRate is the UART transport's default symbol rate
	// (spec.md §4.4), used when a url carries no explicit rate.
	DefaultBaudRate = 115200

	// envTransportURL and envAddins name the environment variables
	// spec.md §6.3 reserves for out-of-process configuration.
	envTransportURL = "UQT_PORT"
	envAddins       = "UQT_ADDINS"
)

// ClientOption configures Connect. Modeled on the teacher's ClientOption
// (client_option.go), replacing TCP dial/TLS/reconnect settings with the
// transport-agnostic knobs spec.md §4.5/§6.3 calls for: response timeout,
// UART baud rate, and addin modules to load before the transport opens.
type ClientOption struct {
	ResponseTimeout time.Duration
	BaudRate        int
	Addins          []string
}

// DefaultClientOption returns the option set Connect starts from before
// applying any func(*ClientOption) overrides, seeded from UQT_ADDINS when
// set (spec.md §4.3/§9 "addins are loaded ... from the UQT_ADDINS
// environment variable at process start").
func DefaultClientOption() ClientOption {
	o := ClientOption{
		ResponseTimeout: DefaultResponseTimeout,
		BaudRate:        DefaultBaudRate,
	}
	if v := os.Getenv(envAddins); v != "" {
		o.Addins = splitAddins(v)
	}
	return o
}

func splitAddins(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WithResponseTimeout overrides how long Command blocks waiting for a
// response before failing with a timeout TransportError (spec.md §5).
func WithResponseTimeout(d time.Duration) func(*ClientOption) {
	return func(o *ClientOption) {
		if d > 0 {
			o.ResponseTimeout = d
		}
	}
}

// WithBaudRate overrides the UART transport's symbol rate. Connect folds
// this into the transport url as an "@<rate>" suffix (see parseBaudSuffix)
// before opening, so it has no effect on transports that don't parse one
// and is overridden by a rate already embedded in the url.
func WithBaudRate(baud int) func(*ClientOption) {
	return func(o *ClientOption) {
		if baud > 0 {
			o.BaudRate = baud
		}
	}
}

// WithAddins appends addin module names to load via LoadAddins before the
// transport is opened, in addition to any named by UQT_ADDINS.
func WithAddins(names ...string) func(*ClientOption) {
	return func(o *ClientOption) {
		o.Addins = append(o.Addins, names...)
	}
}

// EnvTransportURL returns the transport url named by UQT_PORT, and whether
// it was set. Connect does not consult this automatically — callers that
// want the spec.md §6.3 env-driven CLI convention do so explicitly, e.g.
//
//	url, ok := uci.EnvTransportURL()
//	if !ok { url = "uart:/dev/ttyACM0" }
//	c, err := uci.Connect(url)
func EnvTransportURL() (string, bool) {
	v := os.Getenv(envTransportURL)
	return v, v != ""
}

// parseBaudSuffix extracts a trailing "@<rate>" baud override from a
// transport url, e.g. "uart:/dev/ttyACM0@921600". Returns the url with the
// suffix stripped and the parsed rate, or ok=false if none was present.
func parseBaudSuffix(url string) (string, int, bool) {
	i := strings.LastIndexByte(url, '@')
	if i < 0 {
		return url, 0, false
	}
	rate, err := strconv.Atoi(url[i+1:])
	if err != nil {
		return url, 0, false
	}
	return url[:i], rate, true
}
