package models

// EnvelopeHeader is the routing information taken from the first line of a telemetry envelope.
type EnvelopeHeader struct {
	DSN       string
	Host      string
	ProjectID string
}
