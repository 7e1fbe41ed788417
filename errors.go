package stagecraft

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrClipNotFound is returned when an action is requested by a name that
	// has no bound animation clip.
	ErrClipNotFound = errors.New("stagecraft: animation clip not found")

	// ErrAssetNotLoaded is returned by Future.Poll while the load is pending.
	ErrAssetNotLoaded = errors.New("stagecraft: asset not loaded yet")

	// ErrAssetNotFound is returned when an asset source does not exist.
	ErrAssetNotFound = errors.New("stagecraft: asset not found")

	// ErrUnknownTheme is returned when parsing a theme name that is neither
	// pastel nor dracula.
	ErrUnknownTheme = errors.New("stagecraft: unknown theme")

	// ErrNoCameras is returned when a loop is run without any camera rig.
	ErrNoCameras = errors.New("stagecraft: no camera rig registered")
)

// ClipNotFoundError reports a request for an action name with no bound clip.
type ClipNotFoundError struct {
	Name string
}

func (e *ClipNotFoundError) Error() string {
	return fmt.Sprintf("stagecraft: animation clip %q not found", e.Name)
}

// Is makes errors.Is(err, ErrClipNotFound) match.
func (e *ClipNotFoundError) Is(target error) bool {
	return target == ErrClipNotFound
}
