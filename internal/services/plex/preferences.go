package plex

import (
	"encoding/xml"
	"os"
	"strings"
)

// tokenFromPreferences reads the PlexOnlineToken attribute of the server's
// Preferences.xml. Returns the empty string on any failure; the file is owned
// by the plex user and often unreadable.
func tokenFromPreferences(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var prefs struct {
		Token string `xml:"PlexOnlineToken,attr"`
	}
	if err := xml.Unmarshal(data, &prefs); err != nil {
		return ""
	}
	return strings.TrimSpace(prefs.Token)
}
