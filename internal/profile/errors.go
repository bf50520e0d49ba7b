package profile

import "fmt"

// NoProfileError indicates that no profile could be resolved: no explicit
// flag, no environment override, and no stored default.
type NoProfileError struct{}

func (e *NoProfileError) Error() string {
	return fmt.Sprintf("no profile selected: pass --profile, set %s, or run 'gogctl profile set-default <name>'", EnvProfile)
}

// UnknownProfileError indicates that the resolved profile name does not
// exist on disk.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("profile %q does not exist: run 'gogctl profile add %s' to create it", e.Name, e.Name)
}

// DuplicateProfileError indicates an add was requested for a profile name
// that already exists.
type DuplicateProfileError struct {
	Name string
}

func (e *DuplicateProfileError) Error() string {
	return fmt.Sprintf("profile %q already exists: remove it first with 'gogctl profile remove %s'", e.Name, e.Name)
}

// InvalidNameError indicates a profile name that is not filesystem-safe.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid profile name %q: use letters, digits, '.', '_' or '-'", e.Name)
}
