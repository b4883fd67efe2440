package repository

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("coevolution/repository", "versioned artifact repository and change propagation")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)
