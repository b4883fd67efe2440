package scenarios

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("coevolution/scenarios", "example ecosystems")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
