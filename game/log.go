package game

import "github.com/sirupsen/logrus"

// Log receives board lifecycle events. Callers may swap its level, formatter
// or output; the board never writes anywhere else.
var Log = logrus.New()
