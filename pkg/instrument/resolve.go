package instrument

// TransactionName derives the logical operation name for a request by
// walking the host's route table in declared order and stopping at the
// first full match: first-match-wins, later routes are never evaluated.
//
// Returns false when routing metadata has not been attached to the request
// yet, or when no route fully matches.
func TransactionName(req Request, style TransactionStyle) (string, bool) {
	table := req.Router()
	if table == nil {
		return "", false
	}

	for _, route := range table.Routes() {
		if route.Match(req) != MatchFull {
			continue
		}
		switch style {
		case StyleURL:
			return route.Path(), true
		default:
			return route.Name(), true
		}
	}
	return "", false
}
