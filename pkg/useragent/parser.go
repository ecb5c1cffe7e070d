package useragent

import (
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// Parser wraps the User-Agent parser used for click diagnostics.
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

// DeviceInfo represents parsed device information.
type DeviceInfo struct {
	DeviceType string // mobile, desktop, tablet, bot, unknown
	Browser    string // Chrome, Firefox, Safari, etc.
	OS         string // Windows, iOS, Android, etc.
	Raw        string // Original User-Agent string
}

// NewParser creates a parser backed by the library's built-in
// regex definitions.
func NewParser(log *zap.Logger) *Parser {
	return &Parser{
		parser: uaparser.NewFromSaved(),
		log:    log,
	}
}

// Parse разбирает строку User-Agent в информацию об устройстве.
func (p *Parser) Parse(userAgent string) *DeviceInfo {
	if userAgent == "" {
		return &DeviceInfo{
			DeviceType: "unknown",
			Browser:    "unknown",
			OS:         "unknown",
		}
	}

	client := p.parser.Parse(userAgent)

	info := &DeviceInfo{
		Browser: orUnknown(client.UserAgent.Family),
		OS:      orUnknown(client.Os.Family),
		Raw:     userAgent,
	}
	info.DeviceType = deviceType(client, userAgent)

	return info
}

func deviceType(client *uaparser.Client, userAgent string) string {
	if isBot(client.UserAgent.Family, userAgent) {
		return "bot"
	}

	osFamily := client.Os.Family
	switch {
	case containsFold(osFamily, "iOS"):
		if containsFold(userAgent, "iPad") {
			return "tablet"
		}
		return "mobile"
	case containsFold(osFamily, "Android"):
		// Планшеты на Android обычно не содержат "Mobile" в User-Agent
		if !containsFold(userAgent, "Mobile") {
			return "tablet"
		}
		return "mobile"
	case containsFold(osFamily, "Windows Phone"), containsFold(osFamily, "BlackBerry"):
		return "mobile"
	}

	for _, desktop := range []string{"Windows", "Mac OS X", "macOS", "Linux", "Ubuntu", "Chrome OS", "FreeBSD"} {
		if containsFold(osFamily, desktop) {
			return "desktop"
		}
	}

	return "unknown"
}

func isBot(uaFamily, userAgent string) bool {
	indicators := []string{
		"Googlebot", "Bingbot", "YandexBot", "DuckDuckBot", "Baiduspider",
		"facebookexternalhit", "Twitterbot", "TelegramBot", "WhatsApp",
		"bot", "crawler", "spider", "scraper",
	}
	for _, indicator := range indicators {
		if containsFold(uaFamily, indicator) || containsFold(userAgent, indicator) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	if s == "" || substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func orUnknown(s string) string {
	if s == "" || s == "Other" {
		return "unknown"
	}
	return s
}
