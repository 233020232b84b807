package pardll

//
// Endpoint naming (for log messages)
//

import (
	"fmt"
	"sync/atomic"
)

// endpointID is the unique ID of each physical layer endpoint.
var endpointID = &atomic.Int64{}

// newEndpointName constructs a new, unique name for a [PhysicalLayer],
// used only in diagnostic log lines.
func newEndpointName() string {
	return fmt.Sprintf("phy%d", endpointID.Add(1))
}
