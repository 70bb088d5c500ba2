package indicator

import "errors"

// ErrInsufficientData is returned when the series is shorter than the
// longest required indicator window.
var ErrInsufficientData = errors.New("insufficient data for indicator computation")
