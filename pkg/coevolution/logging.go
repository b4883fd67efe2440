package coevolution

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("coevolution/mapping", "co-evolution mapping functions")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
