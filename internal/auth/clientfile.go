package auth

import (
	"encoding/json"
	"os"
)

// clientFile mirrors the client_secret.json layout downloaded from the
// Google Cloud Console. Desktop apps use the "installed" shape, web apps
// use "web"; either carries the client id and secret gogctl needs.
type clientFile struct {
	Installed *clientSection `json:"installed"`
	Web       *clientSection `json:"web"`
}

type clientSection struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ReadClientFile extracts the OAuth client id and secret from a
// client_secret.json descriptor.
func ReadClientFile(path string) (clientID, clientSecret string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", &InvalidClientFileError{Path: path, Reason: err.Error()}
	}

	var cf clientFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return "", "", &InvalidClientFileError{Path: path, Reason: "not valid JSON: " + err.Error()}
	}

	section := cf.Installed
	if section == nil {
		section = cf.Web
	}
	if section == nil {
		return "", "", &InvalidClientFileError{Path: path, Reason: `missing both "installed" and "web" credential sections`}
	}
	if section.ClientID == "" || section.ClientSecret == "" {
		return "", "", &InvalidClientFileError{Path: path, Reason: "client_id or client_secret is empty"}
	}
	return section.ClientID, section.ClientSecret, nil
}
