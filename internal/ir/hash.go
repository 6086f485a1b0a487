package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed fingerprints.
// Version suffix enables future algorithm migration.
const (
	DomainResult = "cminer/result/v1"
	DomainConfig = "cminer/config/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ResultHash fingerprints a report's mined content: config, frequent set,
// closed set and rules. Two runs over the same segments with the same
// thresholds always produce the same hash.
func ResultHash(r Report) (string, error) {
	canonical, err := MarshalCanonical(r.ToIRObject())
	if err != nil {
		return "", fmt.Errorf("ResultHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainResult, canonical), nil
}

// ConfigHash fingerprints mining thresholds.
func ConfigHash(c ReportConfig) (string, error) {
	canonical, err := MarshalCanonical(c.ToIRObject())
	if err != nil {
		return "", fmt.Errorf("ConfigHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainConfig, canonical), nil
}

// MustResultHash is like ResultHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustResultHash(r Report) string {
	hash, err := ResultHash(r)
	if err != nil {
		panic(err)
	}
	return hash
}
