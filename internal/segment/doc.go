// Package segment cuts a raw access trace into the fixed-size windows the
// miner counts support over.
//
// A trace is a string of symbols, one Unicode code point per access. Trace
// files may wrap lines or pad with spaces; Normalize removes that layout and
// NFC-normalizes the result so visually identical symbols compare equal.
package segment
