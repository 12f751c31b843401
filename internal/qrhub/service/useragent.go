package service

import (
	"strings"

	"github.com/mssola/useragent"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
)

// parseUserAgent classifies a raw User-Agent header for scan analytics.
func parseUserAgent(raw string) (browser, os string, device domain.Device) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", domain.DeviceUnknown
	}

	ua := useragent.New(raw)
	name, version := ua.Browser()
	browser = strings.TrimSpace(name + " " + version)
	os = ua.OS()

	switch {
	case ua.Bot():
		device = domain.DeviceBot
	case ua.Mobile():
		device = domain.DeviceMobile
	case os == "" && name == "":
		device = domain.DeviceUnknown
	default:
		device = domain.DeviceDesktop
	}
	return browser, os, device
}
