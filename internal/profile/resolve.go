package profile

import "os"

// EnvProfile selects the active profile when no explicit flag is given.
const EnvProfile = "GOGCTL_PROFILE"

// ResolveActive determines the active profile name.
//
// Precedence: the explicit parameter, then the GOGCTL_PROFILE environment
// variable, then the stored default. It fails with *NoProfileError if none
// resolve and with *UnknownProfileError if the resolved name does not exist.
func ResolveActive(store Store, explicit string) (string, error) {
	name := explicit
	if name == "" {
		name = os.Getenv(EnvProfile)
	}
	if name == "" {
		def, err := store.Default()
		if err != nil {
			return "", err
		}
		name = def
	}
	if name == "" {
		return "", &NoProfileError{}
	}
	if !store.Exists(name) {
		return "", &UnknownProfileError{Name: name}
	}
	return name, nil
}
