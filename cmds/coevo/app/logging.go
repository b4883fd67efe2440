package app

import (
	"fmt"

	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("coevolution/cli", "co-evolution command line")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

// ConfigureLogging sets the log level for all co-evolution realms.
func ConfigureLogging(level string) error {
	l, err := logging.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	logging.DefaultContext().AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("coevolution")))
	return nil
}
