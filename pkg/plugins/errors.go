package plugins

import (
	"errors"
	"fmt"
)

var (
	// ErrEnumerate means the plugin root could not be listed
	ErrEnumerate = errors.New("plugin root enumeration failed")
	// ErrMissingFile means an entry point or manifest file is absent
	ErrMissingFile = errors.New("required plugin file missing")
	// ErrEntryPoint means the entry point did not yield an executor
	ErrEntryPoint = errors.New("invalid entry point")
	// ErrManifest means the manifest is unreadable or has the wrong shape
	ErrManifest = errors.New("invalid manifest")
	// ErrUnknownFactory means the entry point names a factory nobody registered
	ErrUnknownFactory = errors.New("unknown factory")
)

// Reason classifies why a candidate directory was skipped
type Reason string

const (
	ReasonMissingFile Reason = "missing_file"
	ReasonEntryPoint  Reason = "entry_point"
	ReasonManifest    Reason = "manifest"
)

// InvalidPluginError reports a candidate directory that failed validation.
// The loader skips such directories; it never surfaces this error from Initialize.
type InvalidPluginError struct {
	Kind   Kind
	Dir    string
	Reason Reason
	Err    error
}

func (e *InvalidPluginError) Error() string {
	return fmt.Sprintf("%s plugin %s: %s: %v", e.Kind, e.Dir, e.Reason, e.Err)
}

func (e *InvalidPluginError) Unwrap() error {
	return e.Err
}

// Is lets callers match on the sentinel for the failure reason
func (e *InvalidPluginError) Is(target error) bool {
	switch e.Reason {
	case ReasonMissingFile:
		return target == ErrMissingFile
	case ReasonEntryPoint:
		return target == ErrEntryPoint
	case ReasonManifest:
		return target == ErrManifest
	}
	return false
}

// ManifestError carries the schema or decode failure for a manifest file
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// StartupError is returned by Initialize when the loader cannot run at all.
// Callers are expected to abort the process.
type StartupError struct {
	Root string
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("indexing plugins in %s: %v", e.Root, e.Err)
}

func (e *StartupError) Unwrap() []error {
	return []error{ErrEnumerate, e.Err}
}
