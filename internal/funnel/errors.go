package funnel

import "errors"

var errNoDispatcher = errors.New("no dispatcher configured")
