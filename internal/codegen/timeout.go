package codegen

import "time"

// componentTimeout bounds a single component's generation attempt. On
// expiry the component is skipped, not the whole generation pass aborted,
// per spec.md §4.3's skip-not-abort semantics.
const componentTimeout = 120 * time.Second
