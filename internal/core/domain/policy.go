package domain

// DefaultTriggerAccount is the account name that opts into Google Cloud
// interception when no other trigger is configured. It mirrors the username
// Google's registries expect alongside an OAuth access token.
const DefaultTriggerAccount = "oauth2accesstoken"

// Policy decides which operations are subject to token management and which
// pass through to the backing store untouched. It is a pure value: the
// environment is read once at startup and handed in, never consulted here.
type Policy struct {
	// AlwaysIntercept forces interception for every account. Set when the
	// override environment flag carries any non-empty value.
	AlwaysIntercept bool
	// TriggerAccount opts a single account name into interception. Empty
	// means DefaultTriggerAccount.
	TriggerAccount string
}

// Intercepts reports whether the (service, account) pair is managed.
// Precedence: the override wins outright, then an exact account match
// against the trigger. The service name carries no weight in the current
// rule but is part of the decision's input set.
func (p Policy) Intercepts(service, account string) bool {
	if p.AlwaysIntercept {
		return true
	}
	trigger := p.TriggerAccount
	if trigger == "" {
		trigger = DefaultTriggerAccount
	}
	return account == trigger
}
