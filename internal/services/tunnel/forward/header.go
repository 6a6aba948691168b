package forward

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/errors"
)

// Destination is the only host and set of project ids envelopes may be relayed to.
type Destination struct {
	host       string
	projectIDs map[string]struct{}
}

func NewDestination(host string, projectIDs []string) Destination {
	ids := make(map[string]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids[id] = struct{}{}
		}
	}

	return Destination{host: host, projectIDs: ids}
}

func (d Destination) Host() string {
	return d.host
}

func (d Destination) Allows(host, projectID string) bool {
	if d.host == "" || host != d.host {
		return false
	}

	_, ok := d.projectIDs[projectID]
	return ok
}

// ParseHeader reads the routing header of an envelope and checks it against dest.
// It does no I/O.
func ParseHeader(raw []byte, dest Destination) (models.EnvelopeHeader, error) {
	const op = "services.tunnel.ParseHeader"

	if !utf8.Valid(raw) {
		return models.EnvelopeHeader{}, fmt.Errorf("%s: %w", op, internalErrors.ErrDecode)
	}

	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return models.EnvelopeHeader{}, fmt.Errorf("%s: %w: empty header line", op, internalErrors.ErrMalformedEnvelope)
	}

	if !gjson.ValidBytes(line) {
		return models.EnvelopeHeader{}, fmt.Errorf("%s: %w: header is not json", op, internalErrors.ErrMalformedEnvelope)
	}

	dsn := gjson.GetBytes(line, "dsn")
	if dsn.Type != gjson.String || dsn.Str == "" {
		return models.EnvelopeHeader{}, fmt.Errorf("%s: %w: dsn is missing", op, internalErrors.ErrMalformedEnvelope)
	}

	parsed, err := url.Parse(dsn.Str)
	if err != nil || parsed.Hostname() == "" {
		return models.EnvelopeHeader{}, fmt.Errorf("%s: %w: dsn is not a url", op, internalErrors.ErrMalformedEnvelope)
	}

	header := models.EnvelopeHeader{
		DSN:       dsn.Str,
		Host:      parsed.Hostname(),
		ProjectID: strings.Trim(parsed.Path, "/"),
	}

	if !dest.Allows(header.Host, header.ProjectID) {
		return header, fmt.Errorf("%s: %w: %s/%s", op, internalErrors.ErrForbiddenDestination, header.Host, header.ProjectID)
	}

	return header, nil
}
