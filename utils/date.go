package utils

import "time"

// BrisbaneTZ is AEST without daylight saving.
var BrisbaneTZ = time.FixedZone("UTC+10", 10*60*60)
