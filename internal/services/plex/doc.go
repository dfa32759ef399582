// Package plex triggers Plex Media Server library scans over its HTTP API.
//
// The Scanner resolves an authentication token (config value, or the
// PlexOnlineToken attribute in Preferences.xml as a fallback), lists library
// sections, and maps filesystem paths to the section whose location is the
// longest prefix of the path. Partial scans target a single path inside a
// section; full scans refresh a whole section.
package plex
