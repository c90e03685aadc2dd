package kucoin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"
)

// credentials holds one configured API session. Constructed explicitly
// and passed into the client, never read from process-wide globals.
type credentials struct {
	key        string
	secret     string
	passphrase string
}

func (c credentials) valid() bool {
	return c.key != "" && c.secret != "" && c.passphrase != ""
}

// headers builds the v2 signed header set for a request. The signature
// covers timestamp+method+path+body; the passphrase itself is signed
// with the same secret.
func (c credentials) headers(method, pathWithQuery, body string, now time.Time) map[string]string {
	timestamp := strconv.FormatInt(now.UnixMilli(), 10)
	return map[string]string{
		"KC-API-KEY":         c.key,
		"KC-API-SIGN":        sign(c.secret, timestamp+method+pathWithQuery+body),
		"KC-API-TIMESTAMP":   timestamp,
		"KC-API-PASSPHRASE":  sign(c.secret, c.passphrase),
		"KC-API-KEY-VERSION": "2",
	}
}

func sign(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
