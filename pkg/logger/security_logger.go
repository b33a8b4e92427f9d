package logger

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	urlPattern = regexp.MustCompile(`https?://[^\s]+`)
	// Glassdoor puts credentials in the query string: t.p=<partner>&t.k=<key>
	credentialPattern = regexp.MustCompile(`(?i)(t\.k|key|token|secret)=[^&\s]+`)
)

// SecurityLogger keeps API keys and full endpoints out of log output
type SecurityLogger struct {
	*Logger
}

// NewSecurityLogger wraps the given logger, or the global one when nil
func NewSecurityLogger(l *Logger) *SecurityLogger {
	if l == nil {
		l = GetLogger()
	}
	return &SecurityLogger{Logger: l}
}

// MaskKey replaces an API key with a short stable hash
func (sl *SecurityLogger) MaskKey(key string) string {
	if key == "" {
		return ""
	}
	return "key#" + sl.GenerateHash(key)[:8]
}

// MaskAPIEndpoint keeps the host of an endpoint and hashes the rest
func (sl *SecurityLogger) MaskAPIEndpoint(apiURL string) string {
	if apiURL == "" {
		return ""
	}

	parsedURL, err := url.Parse(apiURL)
	if err != nil || parsedURL.Host == "" {
		return "api-endpoint#" + sl.GenerateHash(apiURL)[:8]
	}

	return fmt.Sprintf("%s/api#%s", parsedURL.Host, sl.GenerateHash(apiURL)[:8])
}

// MaskLogMessage strips credentials from a message and masks any URLs in it
func (sl *SecurityLogger) MaskLogMessage(message string) string {
	masked := credentialPattern.ReplaceAllString(message, "${1}=***")
	return urlPattern.ReplaceAllStringFunc(masked, sl.MaskAPIEndpoint)
}

// MaskSensitiveData masks key and url valued fields
func (sl *SecurityLogger) MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{}, len(data))

	for key, value := range data {
		lowerKey := strings.ToLower(key)
		str, isString := value.(string)

		switch {
		case !isString:
			masked[key] = value
		case strings.Contains(lowerKey, "key") || strings.Contains(lowerKey, "secret"):
			masked[key] = sl.MaskKey(str)
		case strings.Contains(lowerKey, "url") || strings.Contains(lowerKey, "endpoint"):
			masked[key] = sl.MaskAPIEndpoint(str)
		default:
			masked[key] = value
		}
	}

	return masked
}

// GenerateHash returns a hex sha256 prefix used to correlate masked values
func (sl *SecurityLogger) GenerateHash(data string) string {
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash[:8])
}

// SafeInfo logs info with automatic sensitive data masking
func (sl *SecurityLogger) SafeInfo(msg string, fields map[string]interface{}) {
	sl.Logger.WithFields(sl.MaskSensitiveData(fields)).Info(sl.MaskLogMessage(msg))
}

// SafeWarn logs warning with automatic sensitive data masking
func (sl *SecurityLogger) SafeWarn(msg string, fields map[string]interface{}) {
	sl.Logger.WithFields(sl.MaskSensitiveData(fields)).Warn(sl.MaskLogMessage(msg))
}

// SafeDebug logs debug with automatic sensitive data masking
func (sl *SecurityLogger) SafeDebug(msg string, fields map[string]interface{}) {
	sl.Logger.WithFields(sl.MaskSensitiveData(fields)).Debug(sl.MaskLogMessage(msg))
}
