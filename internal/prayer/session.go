package prayer

// Session identifies one of the three daily attendance windows. The three
// literals below are the keys used in attendance and qaza rows; any other
// value is tolerated and displayed as-is.
type Session string

const (
	SessionFajr      Session = "fajr"
	SessionZoharain  Session = "zoharain"
	SessionMagribain Session = "magribain"
)

// Sessions lists the daily windows in chronological order.
var Sessions = []Session{SessionFajr, SessionZoharain, SessionMagribain}

var sessionNames = map[Session]struct{ En, Ur string }{
	SessionFajr:      {"Fajr", "فجر"},
	SessionZoharain:  {"Zoharain", "ظہرین"},
	SessionMagribain: {"Magribain", "مغربین"},
}

// Known reports whether s is one of the three daily sessions.
func (s Session) Known() bool {
	_, ok := sessionNames[s]
	return ok
}

// Name returns the English display name, falling back to the raw
// string for unrecognized session types.
func (s Session) Name() string {
	if n, ok := sessionNames[s]; ok {
		return n.En
	}
	return string(s)
}

// NameUrdu returns the Urdu display name with the same fallback.
func (s Session) NameUrdu() string {
	if n, ok := sessionNames[s]; ok {
		return n.Ur
	}
	return string(s)
}
