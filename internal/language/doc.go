// Package language maps between ISO 639 codes, display names and the
// language tags echomux writes into stream metadata.
//
// A Registry combines the built-in table with user-defined languages from
// the configuration and can spot a language in a companion filename such
// as "Show.S01E01.German.aac".
package language
