package ranger

import "errors"

// ErrNilOption is returned when a RangerOption is given nothing to configure.
var ErrNilOption = errors.New("nil option")
