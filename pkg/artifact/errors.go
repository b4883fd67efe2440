package artifact

import (
	"fmt"
)

var ErrNoIdentity = fmt.Errorf("artifact without name")
var ErrNoMapping = fmt.Errorf("transformation without mapping")
var ErrInvalidPayload = fmt.Errorf("payload not supported by artifact kind")
