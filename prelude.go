package mlatu

import _ "embed"

// Prelude is the standard rule set, asserted into the prelude module at
// startup unless disabled.
//
//go:embed prelude.mlt
var Prelude string
