package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// Params is an insertion-ordered parameter list. Binance verifies the HMAC
// against the exact byte sequence it receives, so the order used for signing
// must match the order on the wire; a map would randomize it.
type Params struct {
	pairs []pair
}

type pair struct {
	key   string
	value string
}

// Set appends a parameter, or overwrites the value in place if the key is
// already present (keeping its original position).
func (p *Params) Set(key, value string) {
	for i := range p.pairs {
		if p.pairs[i].key == key {
			p.pairs[i].value = value
			return
		}
	}
	p.pairs = append(p.pairs, pair{key: key, value: value})
}

// Get returns the value for key, or "" if absent.
func (p *Params) Get(key string) string {
	for _, kv := range p.pairs {
		if kv.key == key {
			return kv.value
		}
	}
	return ""
}

// Len returns the number of parameters.
func (p *Params) Len() int { return len(p.pairs) }

// Encode renders the list as an URL-encoded query string in insertion order.
// The same output is used both for signing and for transmission.
func (p *Params) Encode() string {
	var b strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}

// redacted returns a copy with the signature value masked, for logging.
func (p *Params) redacted() string {
	var b strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(kv.key)
		b.WriteByte('=')
		if kv.key == "signature" {
			b.WriteString("***")
		} else {
			b.WriteString(kv.value)
		}
	}
	return b.String()
}

// Sign computes the lowercase hex HMAC-SHA256 of the encoded parameter list.
// Deterministic for a given list and secret; an empty list is valid input.
func Sign(p *Params, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(p.Encode()))
	return hex.EncodeToString(mac.Sum(nil))
}

// timeNowMillis is replaceable in tests for deterministic timestamps.
var timeNowMillis = func() int64 { return time.Now().UnixMilli() }
