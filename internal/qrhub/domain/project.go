package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	KindProject = "qrProject"

	DefaultFgColor = "#000000"
	DefaultBgColor = "#ffffff"
)

// Project is a QR code project. OwnerID is empty on legacy records, which
// are then treated as public.
type Project struct {
	ID         string      `json:"id"`
	Kind       string      `json:"type,omitempty"`
	Name       string      `json:"name"`
	Payload    string      `json:"text"`
	QRImage    string      `json:"qrImage,omitempty"`
	FgColor    string      `json:"fgColor"`
	BgColor    string      `json:"bgColor"`
	ScanCount  int64       `json:"scanCount"`
	ScanEvents []ScanEvent `json:"scanEvents"`
	OwnerID    string      `json:"userId,omitempty"`
	CreatedAt  time.Time   `json:"createdAt,omitzero"`
	UpdatedAt  time.Time   `json:"updatedAt,omitzero"`

	ETag string `json:"-"`
}

// ApplyDefaults fills colours and the event slice on new or legacy records.
func (p *Project) ApplyDefaults() {
	if p.FgColor == "" {
		p.FgColor = DefaultFgColor
	}
	if p.BgColor == "" {
		p.BgColor = DefaultBgColor
	}
	if p.ScanEvents == nil {
		p.ScanEvents = []ScanEvent{}
	}
}

// RecordScan bumps the counter and appends ev to the bounded log.
func (p *Project) RecordScan(ev ScanEvent) {
	p.ScanCount++
	p.ScanEvents = AppendScanEvent(p.ScanEvents, ev)
}

// Hierarchical URLs need "://"; a bare "host:port" is not a scheme. The
// opaque schemes QR payloads commonly carry are listed explicitly.
var schemeRe = regexp.MustCompile(`^(?i:[a-z][a-z0-9+.-]*://|(?:mailto|tel|sms|smsto|geo|wifi):)`)

// RedirectURL is where /track sends scanners: the payload, with https://
// prefixed when it carries no scheme.
func (p *Project) RedirectURL() string {
	target := strings.TrimSpace(p.Payload)
	if schemeRe.MatchString(target) {
		return target
	}
	return "https://" + target
}
