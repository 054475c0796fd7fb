package domain

// BackendState describes the availability of the search backend. It is
// determined once at startup and threaded through the usecases, so a
// missing or broken backend is a first-class disabled state rather than
// an error scattered through query code.
type BackendState int

const (
	// BackendConfigured means the backend is reachable and the index is ready.
	BackendConfigured BackendState = iota
	// BackendUnconfigured means no backend host was configured. Search and
	// indexing are disabled; ingestion still works.
	BackendUnconfigured
	// BackendMisconfigured means a backend host was configured but could not
	// be used (unreachable, bad credentials, index setup failure). Treated
	// like Unconfigured at runtime, but logged loudly at startup.
	BackendMisconfigured
)

// Configured reports whether search operations may be attempted.
func (s BackendState) Configured() bool {
	return s == BackendConfigured
}

func (s BackendState) String() string {
	switch s {
	case BackendConfigured:
		return "configured"
	case BackendUnconfigured:
		return "unconfigured"
	case BackendMisconfigured:
		return "misconfigured"
	default:
		return "unknown"
	}
}
